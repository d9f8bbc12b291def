package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/civicworks/hazard-portal/pkg/errors"
)

// JSON sends a success payload. Responses are flat objects, matching the
// contract the bundled front-ends already consume.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK sends a 200 response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Error normalises err to a typed error and renders {"error": message} with
// the matching status. Internal details never reach the client.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
