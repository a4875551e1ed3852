// Package docs holds the Swagger 2.0 document served at /swagger. Keep it in step with the
// annotations in handlers/api.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Query history",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HistoryResult"}},
                    "409": {"description": "No table loaded", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/history/{index}/rerun": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Rerun a history entry",
                "parameters": [
                    {"type": "integer", "description": "History index, 0 is the newest", "name": "index", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QueryResult"}},
                    "404": {"description": "No such entry", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "No table loaded or query in progress", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Backend error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/query": {
            "post": {
                "description": "Sends the question to the backend and returns the generated SQL with the first page of results",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Ask a question",
                "parameters": [
                    {"description": "Question", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.QueryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QueryResult"}},
                    "400": {"description": "Empty question", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "No table loaded or query in progress", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Backend error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/results": {
            "get": {
                "description": "Slices the already fetched result set; never calls the backend. Out-of-range pages are clamped.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Page through results",
                "parameters": [
                    {"type": "integer", "description": "Page number, 1-based", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ResultPage"}},
                    "409": {"description": "No table loaded", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/session": {
            "get": {
                "description": "Upload progress, loaded table, last SQL and error for the current session",
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Session state",
                "parameters": [
                    {"type": "string", "description": "Session ID (defaults to the cookie session)", "name": "X-Session-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SessionSnapshot"}}
                }
            }
        },
        "/api/upload": {
            "post": {
                "description": "Validates the extension (csv, xlsx, xls), forwards the file to the backend, then fetches the schema",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Session"],
                "summary": "Upload a CSV or Excel file",
                "parameters": [
                    {"type": "file", "description": "CSV or Excel file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UploadResult"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Upload in progress or table already loaded", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Backend error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports whether the NL-to-SQL backend answers and how many sessions are held in memory",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service health status", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HistoryResult": {
            "type": "object",
            "properties": {
                "history": {"type": "array", "items": {"$ref": "#/definitions/models.HistoryEntry"}}
            }
        },
        "handlers.QueryResult": {
            "type": "object",
            "properties": {
                "page": {"$ref": "#/definitions/models.ResultPage"},
                "sql_query": {"type": "string"}
            }
        },
        "handlers.UploadResult": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.TableSchema"}},
                "table_name": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.HistoryEntry": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "sql": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "models.QueryRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"}
            }
        },
        "models.ResultPage": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "page": {"type": "integer"},
                "rows": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "total_pages": {"type": "integer"},
                "total_rows": {"type": "integer"}
            }
        },
        "models.SessionSnapshot": {
            "type": "object",
            "properties": {
                "chat_error": {"type": "string"},
                "chat_state": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "history_count": {"type": "integer"},
                "sql": {"type": "string"},
                "table_loaded": {"type": "boolean"},
                "table_name": {"type": "string"},
                "upload_error": {"type": "string"},
                "upload_progress": {"type": "integer"},
                "upload_state": {"type": "string"}
            }
        },
        "models.TableSchema": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "sample_data": {"type": "array", "items": {"type": "array", "items": {}}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "NL to SQL Chat API",
	Description:      "Upload a spreadsheet, then ask questions about it in natural language. Each session holds one table.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
