package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Hazard Portal",
        "description": "Municipal hazard reporting portal with RFID check-in",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Reports", "description": "Citizen hazard reports"},
        {"name": "RFID", "description": "Kiosk PIN verification and scan logging"},
        {"name": "Admin", "description": "Session-guarded PIN registry and log retrieval"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/report": {
            "post": {
                "tags": ["Reports"],
                "summary": "Submit a hazard report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Report stored"},
                    "400": {"description": "Missing field or invalid image", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/admin/resolve/{id}": {
            "post": {
                "tags": ["Reports"],
                "summary": "Resolve a hazard report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResolveReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Report resolved"},
                    "400": {"description": "Invalid after image"},
                    "401": {"description": "No admin session"}
                }
            }
        },
        "/api/admin/reports/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export the report table",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "401": {"description": "No admin session"}
                }
            }
        },
        "/api/rfid/verify-pin": {
            "post": {
                "tags": ["RFID"],
                "summary": "Verify a teacher PIN",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyPinRequest"}}
                ],
                "responses": {
                    "200": {"description": "PIN valid"},
                    "400": {"description": "Malformed PIN"},
                    "401": {"description": "Unknown or inactive PIN"}
                }
            }
        },
        "/api/rfid/log-scan": {
            "post": {
                "tags": ["RFID"],
                "summary": "Record an RFID scan event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LogScanRequest"}}
                ],
                "responses": {
                    "200": {"description": "Scan recorded"}
                }
            }
        },
        "/api/admin/pins": {
            "get": {
                "tags": ["Admin"],
                "summary": "List teacher PINs",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "No admin session"}
                }
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Register a teacher PIN",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddPinRequest"}}
                ],
                "responses": {
                    "200": {"description": "PIN added"},
                    "400": {"description": "PIN must be 4 digits"},
                    "409": {"description": "PIN already exists"}
                }
            }
        },
        "/api/admin/pins/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a teacher PIN",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted (idempotent)"}
                }
            }
        },
        "/api/admin/pins/{id}/toggle": {
            "post": {
                "tags": ["Admin"],
                "summary": "Toggle a PIN's active flag",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Toggled"},
                    "404": {"description": "PIN not found"}
                }
            }
        },
        "/api/admin/rfid-logs": {
            "get": {
                "tags": ["Admin"],
                "summary": "Retrieve scan logs",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "CreateReportRequest": {
            "type": "object",
            "required": ["before_image", "description", "latitude", "longitude"],
            "properties": {
                "before_image": {"type": "string", "description": "Image data URI"},
                "description": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "ResolveReportRequest": {
            "type": "object",
            "required": ["after_image"],
            "properties": {
                "after_image": {"type": "string", "description": "Image data URI"}
            }
        },
        "VerifyPinRequest": {
            "type": "object",
            "required": ["pin"],
            "properties": {
                "pin": {"type": "string", "description": "Exactly 4 decimal digits"}
            }
        },
        "LogScanRequest": {
            "type": "object",
            "required": ["card_id"],
            "properties": {
                "user_type": {"type": "string", "enum": ["teacher", "student"]},
                "card_id": {"type": "string"},
                "card_data": {"type": "string"},
                "teacher_pin": {"type": "string"}
            }
        },
        "AddPinRequest": {
            "type": "object",
            "required": ["pin"],
            "properties": {
                "pin": {"type": "string"},
                "teacher_name": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
