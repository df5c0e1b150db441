// Package docs holds the Swagger document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "API is healthy"}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "API is ready"},
                    "503": {"description": "A dependency is down"}
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive"}}
            }
        },
        "/api/v1/chat/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Send a chat message",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.sendMessageReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sendMessageResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/chat/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Get a dialogue session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Reset a dialogue session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/nlu/parse": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["NLU"],
                "summary": "Classify an utterance and extract entities",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/nlu/entities": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["NLU"],
                "summary": "Extract entities",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/nlu/intents": {
            "get": {
                "security": [{"AdminToken": []}],
                "produces": ["application/json"],
                "tags": ["NLU"],
                "summary": "List training intents",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "put": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["NLU"],
                "summary": "Replace training intents",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/nlu/retrain": {
            "post": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["NLU"],
                "summary": "Retrain the intent classifier",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/admin/accounts": {
            "post": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Create an account",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "409": {"description": "Conflict - account number already exists"}
                }
            }
        },
        "/api/v1/admin/accounts/{number}": {
            "get": {
                "security": [{"AdminToken": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get an account",
                "parameters": [{"type": "string", "name": "number", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/admin/chats": {
            "get": {
                "security": [{"AdminToken": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List the chat log",
                "parameters": [
                    {"type": "string", "name": "username", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "definitions": {
        "http.sendMessageReq": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "session_id": {"type": "string"},
                "username": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "http.sendMessageResp": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "reply": {"type": "string"},
                "intent": {"type": "string"},
                "confidence": {"type": "number"},
                "state": {"type": "string"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    },
    "securityDefinitions": {
        "AdminToken": {"type": "apiKey", "name": "X-Admin-Token", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Banking Assistant API",
	Description:      "FAQ and transaction chatbot: intent classification, entity extraction and guided banking flows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
