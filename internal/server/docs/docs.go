// Package docs holds the swagger spec for the demo employee API.
// Regenerate with `go generate ./internal/server`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "apiprobe maintainers",
            "url": "https://github.com/raysh454/apiprobe"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/employees": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "List employees",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size, at most 100", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/employee.ListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Create an employee",
                "parameters": [
                    {"description": "Employee fields", "name": "employee", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/employee.EmployeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/employee.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}}
                }
            }
        },
        "/employees/by-number/{number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Get an employee by employee number",
                "parameters": [
                    {"type": "string", "description": "Employee number", "name": "number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/employee.EmployeeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Get an employee by ID",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/employee.EmployeeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Replace an employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true},
                    {"description": "Employee fields", "name": "employee", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/employee.EmployeeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/employee.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["employees"],
                "summary": "Delete an employee",
                "parameters": [
                    {"type": "integer", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/employee.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/employee.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/employee.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "employee.EmployeeResponse": {
            "type": "object",
            "properties": {
                "employee": {"$ref": "#/definitions/employee.View"},
                "message": {"type": "string", "example": "Employee created successfully"}
            }
        },
        "employee.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Employee not found"},
                "message": {"type": "string", "example": "Failed to retrieve employee"}
            }
        },
        "employee.HealthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Employee API is running"},
                "status": {"type": "string", "example": "healthy"}
            }
        },
        "employee.ListResponse": {
            "type": "object",
            "properties": {
                "employees": {"type": "array", "items": {"$ref": "#/definitions/employee.View"}},
                "pagination": {"$ref": "#/definitions/employee.Pagination"}
            }
        },
        "employee.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Employee deleted successfully"}
            }
        },
        "employee.Pagination": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean", "example": true},
                "has_prev": {"type": "boolean", "example": false},
                "page": {"type": "integer", "example": 1},
                "pages": {"type": "integer", "example": 3},
                "per_page": {"type": "integer", "example": 10},
                "total": {"type": "integer", "example": 25}
            }
        },
        "employee.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Validation error"},
                "messages": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                }
            }
        },
        "employee.View": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2024-01-01T12:00:00.000000"},
                "employee_city": {"type": "string", "example": "New York"},
                "employee_dob": {"type": "string", "example": "1990-05-15"},
                "employee_firstname": {"type": "string", "example": "John"},
                "employee_lastname": {"type": "string", "example": "Doe"},
                "employee_name": {"type": "string", "example": "John Doe"},
                "employee_number": {"type": "string", "example": "EMP001"},
                "id": {"type": "integer", "example": 1},
                "updated_at": {"type": "string", "example": "2024-01-01T12:00:00.000000"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "apiprobe demo employee API",
	Description:      "CRUD over employees, the API the apiprobe console targets by default.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
