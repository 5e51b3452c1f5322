// Package docs registers the OpenAPI description served under /swagger.
// Keep it in step with the godoc annotations in the handlers package.
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
        "/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "List companies",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "industry", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "location", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "jobType", "in": "query"},
                    {"type": "number", "name": "minRating", "in": "query"},
                    {"type": "string", "name": "featured", "in": "query"},
                    {"type": "string", "enum": ["asc", "desc"], "name": "sortOrder", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CompanyListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Register a company",
                "parameters": [
                    {"name": "company", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateCompanyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.CompanyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/companies/logo-upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Get a signed logo upload URL",
                "parameters": [
                    {"name": "upload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LogoUploadRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.LogoUploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/companies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Get a company",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Company"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/companies/{id}/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "List a company's jobs",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "jobType", "in": "query"},
                    {"type": "string", "name": "isActive", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CompanyJobsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Post a job under a company",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Job"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/companies/{id}/reconcile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["companies"],
                "summary": "Recompute openPositions",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CompanyResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "parameters": [
                    {"type": "string", "name": "companyId", "in": "query"},
                    {"type": "string", "name": "jobType", "in": "query"},
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "isActive", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.JobListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Post a job",
                "parameters": [
                    {"name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Job"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get a job",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.JobView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Update a job",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Job"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Delete a job",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CompanyJobsResponse": {
            "type": "object",
            "properties": {
                "jobs": {"type": "array", "items": {"$ref": "#/definitions/models.Job"}},
                "pagination": {"$ref": "#/definitions/models.Pagination"}
            }
        },
        "handlers.CompanyListResponse": {
            "type": "object",
            "properties": {
                "companies": {"type": "array", "items": {"$ref": "#/definitions/models.Company"}},
                "pagination": {"$ref": "#/definitions/models.Pagination"}
            }
        },
        "handlers.CompanyResponse": {
            "type": "object",
            "properties": {
                "company": {"$ref": "#/definitions/models.Company"},
                "message": {"type": "string"}
            }
        },
        "handlers.CreateCompanyRequest": {
            "type": "object",
            "required": ["description", "industry", "location", "name"],
            "properties": {
                "description": {"type": "string"},
                "featured": {"type": "boolean"},
                "industry": {"type": "string"},
                "jobTypes": {"type": "array", "items": {"type": "string"}},
                "location": {"type": "string"},
                "logo": {"type": "string"},
                "name": {"type": "string"},
                "openPositions": {"type": "integer", "minimum": 0},
                "rating": {"type": "number"}
            }
        },
        "handlers.CreateJobRequest": {
            "type": "object",
            "required": ["companyId", "description", "jobType", "location", "title"],
            "properties": {
                "applicationDeadline": {"type": "string", "format": "date-time"},
                "companyId": {"type": "string"},
                "description": {"type": "string"},
                "isActive": {"type": "boolean"},
                "jobType": {"type": "string", "enum": ["Full-time", "Part-time", "Contract", "Internship", "Remote"]},
                "location": {"type": "string"},
                "requirements": {"type": "array", "items": {"type": "string"}},
                "salary": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "handlers.LogoUploadRequest": {
            "type": "object",
            "required": ["contentType", "fileName"],
            "properties": {
                "contentType": {"type": "string"},
                "fileName": {"type": "string"}
            }
        },
        "handlers.LogoUploadResponse": {
            "type": "object",
            "properties": {
                "headers": {"type": "object", "additionalProperties": {"type": "string"}},
                "method": {"type": "string"},
                "storagePath": {"type": "string"},
                "uploadUrl": {"type": "string"}
            }
        },
        "handlers.JobListResponse": {
            "type": "object",
            "properties": {
                "jobs": {"type": "array", "items": {"$ref": "#/definitions/models.JobView"}},
                "pagination": {"$ref": "#/definitions/models.Pagination"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.UpdateJobRequest": {
            "type": "object",
            "properties": {
                "applicationDeadline": {"type": "string", "format": "date-time", "x-nullable": true, "description": "null removes the deadline"},
                "description": {"type": "string"},
                "isActive": {"type": "boolean"},
                "jobType": {"type": "string", "enum": ["Full-time", "Part-time", "Contract", "Internship", "Remote"]},
                "location": {"type": "string"},
                "requirements": {"type": "array", "items": {"type": "string"}},
                "salary": {"type": "string", "x-nullable": true, "description": "null removes the salary"},
                "title": {"type": "string"}
            }
        },
        "models.Company": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "featured": {"type": "boolean"},
                "id": {"type": "string"},
                "industry": {"type": "string"},
                "jobTypes": {"type": "array", "items": {"type": "string"}},
                "location": {"type": "string"},
                "logo": {"type": "string"},
                "name": {"type": "string"},
                "openPositions": {"type": "integer"},
                "rating": {"type": "number"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.CompanySummary": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "string"},
                "industry": {"type": "string"},
                "location": {"type": "string"},
                "logo": {"type": "string"},
                "name": {"type": "string"},
                "rating": {"type": "number"}
            }
        },
        "models.Job": {
            "type": "object",
            "properties": {
                "applicationDeadline": {"type": "string", "format": "date-time"},
                "companyId": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "isActive": {"type": "boolean"},
                "jobType": {"type": "string"},
                "location": {"type": "string"},
                "requirements": {"type": "array", "items": {"type": "string"}},
                "salary": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.JobView": {
            "type": "object",
            "properties": {
                "applicationDeadline": {"type": "string", "format": "date-time"},
                "companyId": {"$ref": "#/definitions/models.CompanySummary"},
                "createdAt": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "isActive": {"type": "boolean"},
                "jobType": {"type": "string"},
                "location": {"type": "string"},
                "requirements": {"type": "array", "items": {"type": "string"}},
                "salary": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Job Board API",
	Description:      "Companies, the jobs they post, and listing with filters and pagination.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
