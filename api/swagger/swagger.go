package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scholarship Portal API",
        "description": "Multi-step scholarship application wizard and admin review surface",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Wizard", "description": "Step navigation and submission"},
        {"name": "Draft", "description": "In-progress application state"},
        {"name": "Documents", "description": "Slot-bound document uploads"},
        {"name": "Payment", "description": "Simulated application fee"},
        {"name": "Applications", "description": "Public receipt lookup"},
        {"name": "Admin", "description": "Application review surface"},
        {"name": "Authentication", "description": "Admin-panel authentication"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/apply/state": {
            "get": {
                "tags": ["Wizard"],
                "summary": "Wizard state",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing session header"}
                }
            }
        },
        "/apply/advance": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Advance one step",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Current step incomplete"}
                }
            }
        },
        "/apply/retreat": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Go back one step",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/apply/submit": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Submit the application",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Submission already in progress"},
                    "412": {"description": "Draft incomplete"}
                }
            }
        },
        "/apply/draft": {
            "get": {
                "tags": ["Draft"],
                "summary": "Load draft",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Draft"],
                "summary": "Update draft sections",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Draft"],
                "summary": "Reset draft",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/apply/fields/validate": {
            "post": {
                "tags": ["Draft"],
                "summary": "Validate one field value",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FieldValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/apply/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "List document slots",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/apply/documents/{slot}": {
            "post": {
                "tags": ["Documents"],
                "summary": "Upload a document",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true},
                    {"name": "slot", "in": "path", "type": "string", "required": true},
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Rejected upload"}
                }
            },
            "delete": {
                "tags": ["Documents"],
                "summary": "Remove a document",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true},
                    {"name": "slot", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Nothing uploaded for slot"}
                }
            }
        },
        "/apply/payment": {
            "post": {
                "tags": ["Payment"],
                "summary": "Pay the application fee",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already paid or in progress"}
                }
            },
            "get": {
                "tags": ["Payment"],
                "summary": "Payment status",
                "parameters": [
                    {"name": "X-Session-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Look up a submitted application",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/applications": {
            "get": {
                "tags": ["Admin"],
                "summary": "List applications",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/applications/stats": {
            "get": {
                "tags": ["Admin"],
                "summary": "Application statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/applications/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export applications as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV download"}
                }
            }
        },
        "/admin/applications/{id}/status": {
            "patch": {
                "tags": ["Admin"],
                "summary": "Update review status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/applications/{id}/receipt": {
            "get": {
                "tags": ["Admin"],
                "summary": "Application receipt PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF download"}
                }
            }
        },
        "/admin/applications/{id}/documents/{slot}": {
            "get": {
                "tags": ["Admin"],
                "summary": "Signed document link",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "slot", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpdateDraftRequest": {
            "type": "object",
            "properties": {
                "termsAccepted": {"type": "boolean"},
                "personalDetails": {"type": "object"},
                "academicDetails": {"type": "object"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["submitted", "reviewed", "approved", "rejected"]}
            }
        },
        "FieldValidationRequest": {
            "type": "object",
            "required": ["step", "field"],
            "properties": {
                "step": {"type": "integer"},
                "field": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
