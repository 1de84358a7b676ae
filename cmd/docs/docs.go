// Package docs holds the swagger description of the API served under /swagger.
// Regenerate with: swag init -g cmd/settlement_backend/main.go -o cmd/docs
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
        "/auth/login": {"post": {"tags": ["auth"], "summary": "User login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}},
        "/users": {"post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create a new user", "responses": {"201": {"description": "Created"}}}},
        "/users/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Current user", "responses": {"200": {"description": "OK"}}}},
        "/producers": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["producers"], "summary": "List producers", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["producers"], "summary": "Register a producer", "responses": {"201": {"description": "Created"}}}
        },
        "/producers/{producerID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["producers"], "summary": "Get a producer", "parameters": [{"type": "string", "name": "producerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["producers"], "summary": "Update a producer", "parameters": [{"type": "string", "name": "producerID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/producers/{producerID}/items": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["items"], "summary": "List a producer's line items", "parameters": [{"type": "string", "name": "producerID", "in": "path", "required": true}, {"type": "string", "name": "status", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["items"], "summary": "Record a line item", "parameters": [{"type": "string", "name": "producerID", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/producers/{producerID}/items/{itemID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["items"], "summary": "Get a line item", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["items"], "summary": "Correct a line item", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["items"], "summary": "Delete a line item", "responses": {"204": {"description": "No Content"}}}
        },
        "/producers/{producerID}/items/{itemID}/settle": {"post": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Settle one line item", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/producers/{producerID}/settlement-summary": {"get": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Settlement summary", "responses": {"200": {"description": "OK"}}}},
        "/producers/{producerID}/settlements": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "List settlement batches", "parameters": [{"type": "integer", "name": "limit", "in": "query"}, {"type": "string", "name": "nextToken", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Record a settlement", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/producers/{producerID}/settlements/preview": {"post": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Preview a settlement", "responses": {"200": {"description": "OK"}}}},
        "/producers/{producerID}/settlements/receipts": {"get": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Settled items by receipt", "responses": {"200": {"description": "OK"}}}},
        "/producers/{producerID}/history/daily": {"get": {"security": [{"BearerAuth": []}], "tags": ["history"], "summary": "Daily settlement history", "parameters": [{"type": "string", "name": "expanded", "in": "query"}, {"type": "string", "name": "toggle", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/producers/{producerID}/history/monthly": {"get": {"security": [{"BearerAuth": []}], "tags": ["history"], "summary": "Monthly history", "parameters": [{"type": "string", "name": "expanded", "in": "query"}, {"type": "string", "name": "toggle", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/settlements/{batchID}": {"get": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Get a settlement batch", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Produce Settlement API",
	Description:      "Records produce delivered by producers and the settlements that pay for it.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
