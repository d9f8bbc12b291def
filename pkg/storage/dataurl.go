package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const imagePrefix = "data:image"

// IsImageDataURI reports whether the payload carries an inline image.
func IsImageDataURI(raw string) bool {
	return strings.HasPrefix(raw, imagePrefix)
}

// DecodeImageDataURI splits an image data-URI into its file extension and raw
// bytes. The extension is the MIME subtype, e.g. "png" for "data:image/png".
func DecodeImageDataURI(raw string) (string, []byte, error) {
	if !IsImageDataURI(raw) {
		return "", nil, fmt.Errorf("payload is not an image data URI")
	}

	header, encoded, found := strings.Cut(raw, ",")
	if !found {
		return "", nil, fmt.Errorf("data URI has no payload")
	}

	mediaType, _, _ := strings.Cut(header, ";")
	_, ext, found := strings.Cut(mediaType, "/")
	if !found || ext == "" {
		return "", nil, fmt.Errorf("data URI has no image subtype")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}

	return ext, data, nil
}
