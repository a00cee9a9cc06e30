// Package docs holds the OpenAPI description served at /swagger. The
// template is maintained by hand; keep it in sync with the handler
// annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/generate-questions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Generate clarifying questions for a project description",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/generate-detailed-prompt": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Generate the detailed database design from answers",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/generate-table-schema": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Generate the SQL schema for one table",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/generate-database-code": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Generate data access code for the designed schema",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/supported-languages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["languages"],
                "summary": "List supported languages and frameworks",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List session ids",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/session/{session_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Fetch a session",
                "parameters": [
                    {
                        "type": "string",
                        "name": "session_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Delete a session",
                "parameters": [
                    {
                        "type": "string",
                        "name": "session_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Schema Studio API",
	Description:      "AI assisted database schema and data layer code generation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
