// Package swagger holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/start.go -o docs/swagger
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/dungeons": {
            "get": {
                "description": "Returns the dungeon names currently used for location_name, sorted by id.",
                "produces": ["application/json"],
                "tags": ["dungeons"],
                "summary": "List Dungeons",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dungeons.Listing"}}
                }
            }
        },
        "/dungeons/refresh": {
            "post": {
                "description": "Downloads the dungeon list. On failure the built-in names are used and the error is reported.",
                "produces": ["application/json"],
                "tags": ["dungeons"],
                "summary": "Refresh Dungeons",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dungeons.Listing"}},
                    "502": {"description": "Fetch failed, fallback in use", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/keys": {
            "get": {
                "description": "Returns every row currently held by the shared key sheet, in sheet order.",
                "produces": ["application/json"],
                "tags": ["keys"],
                "summary": "List Sheet Rows",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Row"}}},
                    "502": {"description": "Sheet unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/keys/sync": {
            "post": {
                "description": "Parses the addon file, merges it into the shared sheet and writes the result back.",
                "produces": ["application/json"],
                "tags": ["keys"],
                "summary": "Sync Addon File",
                "parameters": [
                    {"type": "string", "description": "Addon file, defaults to the saved one", "name": "file_path", "in": "query"},
                    {"type": "boolean", "description": "Merge without writing", "name": "dry_run", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/keys.SyncResult"}},
                    "400": {"description": "No file", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Sheet unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/monitor/logs": {
            "get": {
                "description": "Returns up to limit recent log entries, newest first.",
                "produces": ["application/json"],
                "tags": ["monitor"],
                "summary": "Recent Logs",
                "parameters": [
                    {"type": "integer", "description": "Maximum entries (default 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/logger.Entry"}}}
                }
            }
        },
        "/monitor/logs/stream": {
            "get": {
                "description": "Streams new log entries as server-sent events until the client disconnects.",
                "produces": ["text/event-stream"],
                "tags": ["monitor"],
                "summary": "Follow Logs",
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}}
                }
            }
        },
        "/monitor/start": {
            "post": {
                "description": "Starts watching the given addon file, or the saved one when the body names none. One pass runs before the response.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["monitor"],
                "summary": "Start Monitoring",
                "parameters": [
                    {"description": "Addon file", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/monitor.StartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/monitor.Status"}},
                    "400": {"description": "No file selected or file not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Already running", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/monitor/status": {
            "get": {
                "description": "Whether the addon file is being watched, and the outcome of the last pass.",
                "produces": ["application/json"],
                "tags": ["monitor"],
                "summary": "Monitor Status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/monitor.Status"}}
                }
            }
        },
        "/monitor/stop": {
            "post": {
                "description": "Stops the watcher after its current pass.",
                "produces": ["application/json"],
                "tags": ["monitor"],
                "summary": "Stop Monitoring",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "dungeons.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "dungeons.Listing": {
            "type": "object",
            "properties": {
                "dungeons": {"type": "array", "items": {"$ref": "#/definitions/dungeons.Entry"}},
                "refreshed_at": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "keys.SyncResult": {
            "type": "object",
            "properties": {
                "duration": {"type": "integer"},
                "path": {"type": "string"},
                "plan": {"$ref": "#/definitions/reconcile.Plan"},
                "records": {"type": "integer"},
                "written": {"type": "boolean"}
            }
        },
        "logger.Entry": {
            "type": "object",
            "properties": {
                "fields": {"type": "object", "additionalProperties": {}},
                "level": {"type": "string"},
                "message": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "monitor.StartRequest": {
            "type": "object",
            "properties": {
                "file_path": {"type": "string"}
            }
        },
        "monitor.Status": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "last_error": {"type": "string"},
                "last_pass": {"type": "string"},
                "last_result": {"$ref": "#/definitions/keys.SyncResult"},
                "passes": {"type": "integer"},
                "path": {"type": "string"},
                "started_at": {"type": "string"}
            }
        },
        "reconcile.Action": {
            "type": "object",
            "properties": {
                "local": {"type": "string"},
                "remote": {"type": "string"},
                "type": {"type": "string", "enum": ["insert", "update", "keep", "carry"]},
                "unit": {"type": "string"}
            }
        },
        "reconcile.Plan": {
            "type": "object",
            "properties": {
                "actions": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Action"}},
                "empty": {"type": "boolean"},
                "merged_at": {"type": "string"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Row"}},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"}
            }
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "carried": {"type": "integer"},
                "fresh": {"type": "integer"},
                "inserted": {"type": "integer"},
                "kept": {"type": "integer"},
                "remote": {"type": "integer"},
                "total": {"type": "integer"},
                "updated": {"type": "integer"}
            }
        },
        "reconcile.Row": {
            "type": "object",
            "properties": {
                "generated_at": {"type": "string"},
                "key_level": {"type": "string"},
                "last_updated": {"type": "string"},
                "location_name": {"type": "string"},
                "source_id": {"type": "string"},
                "unit": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Keys Monitor API",
	Description:      "Control API for the AstralKeys sheet monitor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
