// Package docs holds the OpenAPI document served at /swagger/doc.json
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
        "/v1/session": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Issue a session token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}}
                }
            }
        },
        "/v1/analyses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "List past analyses of the session",
                "parameters": [
                    {"type": "integer", "description": "max entries (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.SubmissionSummary"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Analyse a strategy",
                "parameters": [
                    {"description": "strategy", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AnalyzeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Submission"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/analyses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get one analysis of the session",
                "parameters": [
                    {"type": "string", "description": "analysis id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Submission"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/reports/current": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get the current report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Submission"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "tags": ["reports"],
                "summary": "Clear the current report",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/reports/current/html": {
            "get": {
                "produces": ["text/html"],
                "tags": ["reports"],
                "summary": "Get the current report as an HTML document",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.AnalyzeRequest": {
            "type": "object",
            "properties": {"strategy": {"type": "string"}}
        },
        "model.SessionResponse": {
            "type": "object",
            "properties": {"sessionId": {"type": "string"}, "token": {"type": "string"}}
        },
        "model.QuoteSection": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "quote": {"type": "string"},
                "feedback": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.SectionOutcome": {
            "type": "object",
            "properties": {
                "section": {"type": "string"},
                "status": {"type": "string", "enum": ["found", "missing", "no_quote", "empty"]}
            }
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "diagnosisTitle": {"type": "string"},
                "diagnosis": {"type": "string"},
                "praise": {"$ref": "#/definitions/model.QuoteSection"},
                "improve": {"$ref": "#/definitions/model.QuoteSection"},
                "missionsTitle": {"type": "string"},
                "missions": {"type": "array", "items": {"type": "string"}},
                "outcomes": {"type": "array", "items": {"$ref": "#/definitions/model.SectionOutcome"}}
            }
        },
        "model.Submission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sessionId": {"type": "string"},
                "strategy": {"type": "string"},
                "reply": {"type": "string"},
                "report": {"$ref": "#/definitions/model.Report"},
                "status": {"type": "string", "enum": ["ready", "failed", "unparsed"]},
                "error": {"type": "string"},
                "model": {"type": "string"},
                "durationMs": {"type": "integer"},
                "createdAt": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "model.SubmissionSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"},
                "strategy": {"type": "string"},
                "missions": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Win Ugly Coach API",
	Description:      "Strategy coaching reports generated by Gemini.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
