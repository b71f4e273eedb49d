package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Seating API",
        "description": "Exam seating allocation, invigilation and export service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Seating", "description": "Draft allocation and invigilation"},
        {"name": "Plans", "description": "Committed seating plans"},
        {"name": "Exports", "description": "Chart, sticker and CSV rendering"},
        {"name": "Roster", "description": "Roster cache maintenance"}
    ],
    "paths": {
        "/seating/plans/generate": {
            "post": {
                "tags": ["Seating"],
                "summary": "Generate an automatic seating draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePlanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Capacity exceeded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/drafts": {
            "post": {
                "tags": ["Seating"],
                "summary": "Open a manual bench-allocation draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDraftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/drafts/{id}": {
            "get": {
                "tags": ["Seating"],
                "summary": "Get a live draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Draft not found or expired"}
                }
            }
        },
        "/seating/drafts/{id}/rooms/{roomNo}/availability": {
            "get": {
                "tags": ["Seating"],
                "summary": "Report free bench sides of a draft room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "roomNo", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/drafts/{id}/assign": {
            "post": {
                "tags": ["Seating"],
                "summary": "Assign a class to a bench side",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Side already occupied"}
                }
            }
        },
        "/seating/drafts/{id}/rooms/{roomNo}/invigilator": {
            "put": {
                "tags": ["Seating"],
                "summary": "Bind a room-level invigilator",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "roomNo", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BindInvigilatorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/drafts/{id}/invigilators/{teacherId}": {
            "get": {
                "tags": ["Seating"],
                "summary": "List rooms a teacher supervises in a draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "teacherId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/drafts/{id}/commit": {
            "post": {
                "tags": ["Seating"],
                "summary": "Commit a draft as a saved seating plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Rooms without invigilators"}
                }
            }
        },
        "/seating/plans": {
            "get": {
                "tags": ["Plans"],
                "summary": "List saved seating plans",
                "parameters": [
                    {"name": "institutionId", "in": "query", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/plans/{id}": {
            "get": {
                "tags": ["Plans"],
                "summary": "Get one saved seating plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Plans"],
                "summary": "Delete a saved seating plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/seating/plans/{id}/reopen": {
            "post": {
                "tags": ["Plans"],
                "summary": "Reopen a saved plan as a fresh draft",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/plans/{id}/seat": {
            "get": {
                "tags": ["Plans"],
                "summary": "Find a student's seat by roll number",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "rollNo", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/plans/{id}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Enqueue an export of a saved plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/export-jobs/{jobId}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export job status",
                "parameters": [
                    {"name": "jobId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a rendered export via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/seating/roster/invalidate": {
            "post": {
                "tags": ["Roster"],
                "summary": "Drop cached rosters after enrollment changes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InvalidateRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RoomLayoutRequest": {
            "type": "object",
            "properties": {
                "roomNo": {"type": "integer"},
                "name": {"type": "string"},
                "rows": {"type": "integer"},
                "columns": {"type": "integer"},
                "excludedSeats": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["rows", "columns"]
        },
        "BenchRoomRequest": {
            "type": "object",
            "properties": {
                "roomNo": {"type": "integer"},
                "name": {"type": "string"},
                "benchCount": {"type": "integer"}
            },
            "required": ["benchCount"]
        },
        "GeneratePlanRequest": {
            "type": "object",
            "properties": {
                "examName": {"type": "string"},
                "examDate": {"type": "string"},
                "institutionId": {"type": "string"},
                "totalStudents": {"type": "integer"},
                "roomsCount": {"type": "integer"},
                "seatsPerRoom": {"type": "integer"},
                "startRollNo": {"type": "integer"},
                "classLabels": {"type": "array", "items": {"type": "string"}},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/RoomLayoutRequest"}},
                "seed": {"type": "integer"}
            },
            "required": ["examName", "institutionId"]
        },
        "CreateDraftRequest": {
            "type": "object",
            "properties": {
                "examName": {"type": "string"},
                "examDate": {"type": "string"},
                "institutionId": {"type": "string"},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/BenchRoomRequest"}}
            },
            "required": ["examName", "institutionId", "rooms"]
        },
        "AssignClassRequest": {
            "type": "object",
            "properties": {
                "roomNo": {"type": "integer"},
                "side": {"type": "string", "enum": ["LEFT", "RIGHT", "BOTH"]},
                "classLabel": {"type": "string"},
                "invigilatorId": {"type": "string"}
            },
            "required": ["roomNo", "side", "classLabel", "invigilatorId"]
        },
        "BindInvigilatorRequest": {
            "type": "object",
            "properties": {
                "invigilatorId": {"type": "string"}
            },
            "required": ["invigilatorId"]
        },
        "CreateExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["chart", "stickers", "csv"]}
            },
            "required": ["format"]
        },
        "InvalidateRosterRequest": {
            "type": "object",
            "properties": {
                "institutionId": {"type": "string"},
                "classLabel": {"type": "string"}
            },
            "required": ["institutionId"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
