// Package docs registers the swagger specification served at
// /swagger/index.html.
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
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register new user",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Get current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/change-password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Change password",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/wallet": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Wallet"],
                "summary": "Get wallet",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/wallet/deposit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Wallet"],
                "summary": "Create deposit",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/wallet/check-payment/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Wallet"],
                "summary": "Check deposit payment",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/wallet/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Wallet"],
                "summary": "Wallet history",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/loans/my-loans": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Loans"],
                "summary": "List my loans",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/loans/request-approved": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Loans"],
                "summary": "Request loan",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/loans/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Loans"],
                "summary": "Verify profile",
                "responses": {"200": {"description": "OK"}, "402": {"description": "Payment Required"}}
            }
        },
        "/loans/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Loans"],
                "summary": "Get loan",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/loans/{id}/pay": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Loans"],
                "summary": "Pay loan",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "402": {"description": "Payment Required"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/loans/{id}/extend": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Loans"],
                "summary": "Extend loan",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "402": {"description": "Payment Required"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Profile"],
                "summary": "Get profile",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Profile"],
                "summary": "Submit profile",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/withdrawals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Withdrawals"],
                "summary": "List withdrawals",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Withdrawals"],
                "summary": "Create withdrawal",
                "responses": {"201": {"description": "Created"}, "402": {"description": "Payment Required"}}
            }
        },
        "/withdrawals/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Withdrawals"],
                "summary": "Cancel withdrawal",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "ZeelX Sandbox API",
	Description:      "Wallet and microloan sandbox backend for the ZeelX client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
