// Package swagger registers the API documentation served at /swagger.
// Maintained by hand; keep it in sync with the handler annotations.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Fitlog",
            "url": "https://github.com/mpetersen/fitlog"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "JWT session token"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api-keys": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["api-keys"],
                "summary": "List API keys (metadata only)",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["api-keys"],
                "summary": "Create an API key (plaintext returned once)",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api-keys/{id}/revoke": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["api-keys"],
                "summary": "Revoke an API key",
                "responses": {
                    "200": {"description": "Revoked"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/health-import": {
            "post": {
                "tags": ["ingest"],
                "summary": "Import one typed health record (API key auth)",
                "responses": {
                    "200": {"description": "Record saved"},
                    "400": {"description": "Validation failure"},
                    "401": {"description": "Invalid API key"}
                }
            }
        },
        "/health-import/batch": {
            "post": {
                "tags": ["ingest"],
                "summary": "Import up to 100 typed records, each written independently",
                "responses": {
                    "200": {"description": "Per-record results"},
                    "401": {"description": "Invalid API key"}
                }
            }
        },
        "/shortcuts/sync": {
            "post": {
                "tags": ["ingest"],
                "summary": "Sync a flat daily-metrics payload from an iOS Shortcut",
                "responses": {
                    "200": {"description": "Per-metric results"},
                    "400": {"description": "Validation failure"},
                    "401": {"description": "Invalid API key"}
                }
            }
        },
        "/weight": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "List weight history",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "Log weight (upsert by date)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/steps": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "List step history",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "Log steps (upsert by date)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/sleep": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "List sleep history",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "Log sleep (upsert by date)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/nutrition": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "List nutrition history",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["metrics"],
                "summary": "Log daily macros (upsert by date)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/workouts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["workouts"],
                "summary": "List workouts",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["workouts"],
                "summary": "Log a workout (upsert by date and type)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/workouts/today": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["workouts"],
                "summary": "Today's scheduled workout and template",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "List habit logs with the current streak",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Log the daily habit checklist",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/milestones": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["milestones"],
                "summary": "List monthly milestones for a year",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/milestones/seed": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["milestones"],
                "summary": "Seed 12 monthly milestones for a plan year",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already seeded"}
                }
            }
        },
        "/milestones/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["milestones"],
                "summary": "Update a milestone's targets or achievements",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/reviews": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reviews"],
                "summary": "List weekly reviews",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reviews"],
                "summary": "Record the Sunday check-in for a week",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/today": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Day-at-a-glance summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/week": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Current week summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/month": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Current month summary against the plan",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/quarter": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Current quarter summary",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT session token. Format: \"Bearer {token}\""
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Fitlog API",
	Description:      "Personal fitness tracking backend: weight, workouts, habits, and nutrition, with API-key ingestion for phone automations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
