// Package docs holds the OpenAPI document served at /swagger. It follows the
// godoc annotations in internal/api and is registered with swag on import.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "https://github.com/guttosm/botjournal",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/botjournal",
            "email": "support@example.com"
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
        "/api/v1/compare": {
            "post": {
                "description": "Parses both texts and diffs them without storing anything",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Diff two raw logs",
                "parameters": [
                    {"description": "Base and compare log texts", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CompareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DiffResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/days": {
            "get": {
                "description": "Returns summaries of stored days, optionally bounded by from/to (inclusive)",
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "List stored days",
                "parameters": [
                    {"type": "string", "example": "2025-03-01", "description": "Start date YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-03-31", "description": "End date YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.DaySummaryResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/days/{date}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Get a stored day",
                "parameters": [
                    {"type": "string", "example": "2025-03-14", "description": "Trading date YYYY-MM-DD", "name": "date", "in": "path", "required": true},
                    {"type": "string", "default": "base", "description": "base or compare", "name": "kind", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DayAnalysis"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["days"],
                "summary": "Delete a stored day",
                "parameters": [
                    {"type": "string", "example": "2025-03-14", "description": "Trading date YYYY-MM-DD", "name": "date", "in": "path", "required": true},
                    {"type": "string", "default": "base", "description": "base or compare", "name": "kind", "in": "query"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/days/{date}/diff": {
            "get": {
                "description": "Matches trades of the stored compare day against the base day and reports added, removed, modified and id-only changes plus daily stat changes",
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Diff compare day against base",
                "parameters": [
                    {"type": "string", "example": "2025-03-14", "description": "Trading date YYYY-MM-DD", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DiffResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/days/{date}/merge": {
            "post": {
                "description": "Applies selected trades and/or daily stats from the compare day onto base, stores the result as base and drops the compare day",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Merge compare day into base",
                "parameters": [
                    {"type": "string", "example": "2025-03-14", "description": "Trading date YYYY-MM-DD", "name": "date", "in": "path", "required": true},
                    {"description": "What to merge", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.MergeOptions"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DayAnalysis"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/logs": {
            "post": {
                "description": "Parses a raw bot log and stores it as the base or compare day for the date found in the text",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Ingest a bot log",
                "parameters": [
                    {"description": "Raw log", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.IngestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.IngestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Reports ready when the database answers a ping",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.CompareRequest": {
            "type": "object",
            "required": ["base", "compare"],
            "properties": {
                "base": {"type": "string"},
                "compare": {"type": "string"}
            }
        },
        "dto.DaySummaryResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-03-14"},
                "kind": {"type": "string", "example": "base"},
                "total_pnl": {"type": "number", "example": 1250.5},
                "trade_count": {"type": "integer", "example": 12},
                "updated_at": {"type": "string"}
            }
        },
        "dto.DiffResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-03-14"},
                "diff": {"$ref": "#/definitions/models.DiffResult"},
                "has_changes": {"type": "boolean"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "no compare day stored for 2025-03-14"},
                "message": {"type": "string", "example": "day not found"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.IngestRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "kind": {"type": "string", "example": "base"},
                "text": {"type": "string"}
            }
        },
        "dto.IngestResponse": {
            "type": "object",
            "properties": {
                "analysis": {"$ref": "#/definitions/models.DayAnalysis"},
                "date": {"type": "string", "example": "2025-03-14"},
                "kind": {"type": "string", "example": "base"},
                "trade_count": {"type": "integer", "example": 12}
            }
        },
        "models.DayAnalysis": {
            "type": "object",
            "properties": {
                "headline": {"$ref": "#/definitions/models.Headline"},
                "near_stops": {"type": "array", "items": {"$ref": "#/definitions/models.NearStopEvent"}},
                "protection": {"$ref": "#/definitions/models.ProtectionStats"},
                "sessions": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.SessionStats"}},
                "trades": {"type": "array", "items": {"$ref": "#/definitions/models.TradeRecord"}}
            }
        },
        "models.DiffResult": {
            "type": "object",
            "properties": {
                "added": {"type": "array", "items": {"$ref": "#/definitions/models.TradeRecord"}},
                "daily_stat_changes": {"type": "array", "items": {"$ref": "#/definitions/models.FieldChange"}},
                "id_only_changed": {"type": "array", "items": {"$ref": "#/definitions/models.TradePair"}},
                "modified": {"type": "array", "items": {"$ref": "#/definitions/models.TradeChange"}},
                "removed": {"type": "array", "items": {"$ref": "#/definitions/models.TradeRecord"}}
            }
        },
        "models.ExitRecord": {
            "type": "object",
            "properties": {
                "pnl": {"type": "number"},
                "points": {"type": "number"},
                "price": {"type": "number"},
                "quantity": {"type": "integer"},
                "reason": {"type": "string", "enum": ["take_profit", "stop_loss", "manual"]},
                "reason_text": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "models.FieldChange": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "new_value": {},
                "old_value": {}
            }
        },
        "models.Headline": {
            "type": "object",
            "properties": {
                "big_losses": {"type": "integer"},
                "big_wins": {"type": "integer"},
                "contracts_traded": {"type": "integer"},
                "loss_rate": {"type": "number"},
                "losses": {"type": "integer"},
                "max_daily_gain": {"type": "number"},
                "max_daily_loss": {"type": "number"},
                "max_potential_per_contract": {"type": "number"},
                "max_trade_profit": {"type": "number"},
                "max_trade_risk": {"type": "number"},
                "pnl_per_trade": {"type": "number"},
                "total_pnl": {"type": "number"},
                "total_trades": {"type": "integer"},
                "trailing_drawdown": {"type": "number"},
                "win_rate": {"type": "number"},
                "wins": {"type": "integer"}
            }
        },
        "models.MergeOptions": {
            "type": "object",
            "properties": {
                "merge_all": {"type": "boolean"},
                "merge_daily_stats": {"type": "boolean"},
                "merge_trade_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "models.NearStopEvent": {
            "type": "object",
            "properties": {
                "direction": {"type": "string", "enum": ["long", "short"]},
                "distance": {"type": "number"},
                "time": {"type": "string"},
                "trade_id": {"type": "integer"}
            }
        },
        "models.ProtectionStats": {
            "type": "object",
            "properties": {
                "blocked": {"type": "object", "additionalProperties": {"type": "integer"}},
                "chase_restarts": {"type": "integer"},
                "chase_trades": {"type": "integer"},
                "fill_protection": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "models.SessionStats": {
            "type": "object",
            "properties": {
                "avg_pnl_per_trade": {"type": "number"},
                "pnl": {"type": "number"},
                "trades": {"type": "integer"}
            }
        },
        "models.TradeChange": {
            "type": "object",
            "properties": {
                "base": {"$ref": "#/definitions/models.TradeRecord"},
                "changes": {"type": "array", "items": {"$ref": "#/definitions/models.FieldChange"}},
                "compare": {"$ref": "#/definitions/models.TradeRecord"}
            }
        },
        "models.TradePair": {
            "type": "object",
            "properties": {
                "base": {"$ref": "#/definitions/models.TradeRecord"},
                "compare": {"$ref": "#/definitions/models.TradeRecord"}
            }
        },
        "models.TradeRecord": {
            "type": "object",
            "properties": {
                "chase": {"type": "boolean"},
                "direction": {"type": "string", "enum": ["long", "short"]},
                "entry_price": {"type": "number"},
                "exit_time": {"type": "string"},
                "exits": {"type": "array", "items": {"$ref": "#/definitions/models.ExitRecord"}},
                "id": {"type": "integer"},
                "quantity": {"type": "integer"},
                "time": {"type": "string"},
                "total_pnl": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "botjournal API",
	Description:      "Trading bot log journal: parses daily bot logs, stores them and diffs resubmitted days.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
