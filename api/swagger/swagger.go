package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Scheduling API",
        "description": "Exam session scheduling service for university exam periods",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Operator login and identity"},
        {"name": "Scheduling", "description": "Schedule generation and lifecycle"},
        {"name": "System", "description": "Operational metrics"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate an operator account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Return the authenticated identity",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/scheduling/generate": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Generate an exam schedule proposal",
                "description": "Runs the scheduler against the posted instance. Infeasible runs are reported in the body, not as HTTP errors.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid instance"}
                }
            }
        },
        "/scheduling/schedules": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "List stored schedules",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "examSessionPeriodId", "in": "query", "type": "string"},
                    {"name": "academicYear", "in": "query", "type": "string"},
                    {"name": "examSession", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["DRAFT", "PUBLISHED", "ARCHIVED"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Scheduling"],
                "summary": "Persist a generated proposal as a draft schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired"},
                    "412": {"description": "Proposal run did not succeed"}
                }
            }
        },
        "/scheduling/schedules/{id}": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Get one stored schedule with its exams",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Scheduling"],
                "summary": "Delete a draft schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Only drafts can be deleted"}
                }
            }
        },
        "/scheduling/schedules/{id}/publish": {
            "put": {
                "tags": ["Scheduling"],
                "summary": "Publish a draft schedule",
                "description": "Promotes the draft and archives any previously published version of the same exam session period.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Only drafts can be published"}
                }
            }
        },
        "/scheduling/schedules/{id}/export": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Export a stored schedule as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated in-process metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "GenerateScheduleRequest": {
            "type": "object",
            "properties": {
                "examPeriod": {"$ref": "#/definitions/ExamPeriod"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}},
                "availableRooms": {"type": "array", "items": {"$ref": "#/definitions/Room"}},
                "professorPreferences": {"type": "array", "items": {"$ref": "#/definitions/Preference"}},
                "institutionalConstraints": {"$ref": "#/definitions/Constraints"}
            },
            "required": ["examPeriod", "courses", "availableRooms", "institutionalConstraints"]
        },
        "ExamPeriod": {
            "type": "object",
            "properties": {
                "examSessionPeriodId": {"type": "string"},
                "academicYear": {"type": "string"},
                "examSession": {"type": "string"},
                "startDate": {"type": "string", "example": "2025-06-02"},
                "endDate": {"type": "string", "example": "2025-06-06"}
            }
        },
        "Course": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "courseName": {"type": "string"},
                "studentCount": {"type": "integer"},
                "professorIds": {"type": "array", "items": {"type": "string"}},
                "mandatoryStatus": {"type": "string", "enum": ["MANDATORY", "ELECTIVE"]},
                "estimatedDuration": {"type": "integer"},
                "requiredEquipment": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Room": {
            "type": "object",
            "properties": {
                "roomId": {"type": "string"},
                "roomName": {"type": "string"},
                "capacity": {"type": "integer"},
                "equipment": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Preference": {
            "type": "object",
            "properties": {
                "professorId": {"type": "string"},
                "courseId": {"type": "string"},
                "preferredDates": {"type": "array", "items": {"type": "string"}},
                "preferredTimeWindows": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "avoidDates": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Constraints": {
            "type": "object",
            "properties": {
                "workingHours": {"$ref": "#/definitions/TimeWindow"},
                "minimumGapMinutes": {"type": "integer"},
                "maxExamsPerDay": {"type": "integer"}
            }
        },
        "TimeWindow": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string", "example": "08:00"},
                "endTime": {"type": "string", "example": "20:00"}
            }
        },
        "SaveScheduleRequest": {
            "type": "object",
            "properties": {
                "proposalId": {"type": "string"}
            },
            "required": ["proposalId"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "perPage": {"type": "integer"},
                "total": {"type": "integer"},
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
