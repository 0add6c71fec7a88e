// Package docs holds the OpenAPI document served by the Swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "summary": "Database connectivity check",
                "responses": {"200": {"description": "healthy"}, "503": {"description": "dependency unavailable"}}
            }
        },
        "/healthz": {
            "get": {"summary": "Liveness probe", "responses": {"200": {"description": "alive"}}}
        },
        "/documents/{id}": {
            "get": {
                "summary": "Get a document",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "document"}, "400": {"description": "invalid id"}, "404": {"description": "not found"}}
            },
            "delete": {
                "summary": "Delete a document and its stored object",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"204": {"description": "deleted"}, "404": {"description": "not found"}}
            }
        },
        "/documents/{id}/download": {
            "get": {
                "summary": "Presigned download URL for the document content",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "url and expiry in seconds"}, "404": {"description": "not found"}}
            }
        },
        "/vaults/{vaultID}/documents": {
            "get": {
                "summary": "List documents with facet filters",
                "parameters": [
                    {"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["all", "pdf", "image", "document", "spreadsheet", "text", "other"]},
                    {"name": "tag", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "enum": ["all", "today", "week", "month", "year", "custom"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "size", "in": "query", "type": "string", "enum": ["all", "small", "medium", "large"]},
                    {"name": "favorites", "in": "query", "type": "boolean"},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["name", "date", "size"]},
                    {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "folder_id", "in": "query", "type": "string", "format": "uuid"},
                    {"name": "recursive", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "documents"}, "400": {"description": "invalid filter"}}
            },
            "post": {
                "summary": "Upload a file as a pending document",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {"201": {"description": "pending document"}, "400": {"description": "file required"}}
            }
        },
        "/vaults/{vaultID}/documents/bulk": {
            "post": {
                "summary": "Move, tag or delete many documents",
                "parameters": [{"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "batch result"}, "400": {"description": "invalid batch"}}
            }
        },
        "/vaults/{vaultID}/search": {
            "get": {
                "summary": "Search documents and folders, grouped by folder",
                "parameters": [
                    {"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "search result"}, "404": {"description": "vault not found"}}
            }
        },
        "/vaults/{vaultID}/ingest/analyze": {
            "post": {
                "summary": "Classify pending documents",
                "parameters": [{"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "reviewable items"}}
            }
        },
        "/vaults/{vaultID}/ingest/commit": {
            "post": {
                "summary": "Rename, date, place and confirm reviewed items",
                "parameters": [{"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "commit reports"}}
            }
        },
        "/vaults/{vaultID}/ingest/cancel": {
            "post": {
                "summary": "Delete the pending documents of an abandoned batch",
                "parameters": [{"name": "vaultID", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "cancel report"}}
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
	Title:            "Document Vault API",
	Description:      "Bulk ingestion, folder placement, batch mutation and faceted search for document vaults.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
