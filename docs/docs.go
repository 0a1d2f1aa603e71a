// Package docs holds the generated OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/main.go -o docs
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a token pair",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a staff account",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/customers": {
            "get": {
                "tags": ["customers"],
                "summary": "List customers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["customers"],
                "summary": "Create a customer",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/customers/{id}": {
            "get": {
                "tags": ["customers"],
                "summary": "Get a customer",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["customers"],
                "summary": "Update a customer",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["customers"],
                "summary": "Delete a customer",
                "responses": {
                    "204": {"description": "No content"},
                    "409": {"description": "Referenced by subscriptions"}
                }
            }
        },
        "/dashboard/metrics": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard metrics snapshot",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/resellers": {
            "get": {
                "tags": ["resellers"],
                "summary": "List resellers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["resellers"],
                "summary": "Create a reseller",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/software": {
            "get": {
                "tags": ["software"],
                "summary": "List active catalog items",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["software"],
                "summary": "Create a catalog item",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subscriptions": {
            "get": {
                "tags": ["subscriptions"],
                "summary": "List subscriptions, optionally filtered by status",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["subscriptions"],
                "summary": "Create a subscription",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subscriptions/expiring/{days}": {
            "get": {
                "tags": ["subscriptions"],
                "summary": "List active subscriptions expiring within N days",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid days parameter"}
                }
            }
        },
        "/subscriptions/{id}/reminders": {
            "get": {
                "tags": ["reminders"],
                "summary": "List the reminder log for a subscription",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["reminders"],
                "summary": "Record a reminder",
                "responses": {"201": {"description": "Created"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Subscription Tracker API",
	Description:      "Subscription management for software resale: customers, resellers, catalog, subscriptions, reminders and dashboard metrics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
