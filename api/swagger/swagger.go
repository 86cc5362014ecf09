package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SchoolConnect API",
        "description": "Search, calendar and document tools over school announcements",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Announcements", "description": "Ranked search and listings over announcement records"},
        {"name": "Calendar", "description": "Calendar event and reminder creation"},
        {"name": "Documents", "description": "AI document analysis"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Announcement source unreachable"}
                }
            }
        },
        "/announcements/search": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Ranked announcement search",
                "parameters": [
                    {"name": "query", "in": "query", "type": "string", "required": true},
                    {"name": "sender", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "description": "Natural-language date filter, e.g. 'this week'"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation, empty query or date parse error"}
                }
            }
        },
        "/announcements/recent": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Most recent announcements",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements/by-date": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Announcements within a resolved date range",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "Natural-language date phrase, e.g. 'last week'"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Date parse error"}
                }
            }
        },
        "/calendar/events": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Create a calendar event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "502": {"description": "Webhook delivery failed"}
                }
            }
        },
        "/calendar/reminders": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Create a standalone reminder for an existing event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReminderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "502": {"description": "Webhook delivery failed"}
                }
            }
        },
        "/documents/analyze": {
            "post": {
                "tags": ["Documents"],
                "summary": "Analyze document text",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnalyzeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "502": {"description": "Analysis provider failed"}
                }
            }
        }
    },
    "definitions": {
        "CreateEventRequest": {
            "type": "object",
            "required": ["title", "date"],
            "properties": {
                "title": {"type": "string"},
                "date": {"type": "string", "example": "2025-06-10"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "event_type": {"type": "string", "enum": ["auto", "all_day", "timed"]},
                "start_time": {"type": "string", "example": "14:30"},
                "duration_hours": {"type": "number"},
                "with_reminder": {"type": "boolean"},
                "reminder_days_before": {"type": "integer"}
            }
        },
        "CreateReminderRequest": {
            "type": "object",
            "required": ["title", "main_event_date"],
            "properties": {
                "title": {"type": "string"},
                "main_event_date": {"type": "string", "example": "2025-06-10"},
                "description": {"type": "string"},
                "reminder_days_before": {"type": "integer"}
            }
        },
        "AnalyzeRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"},
                "analysis_type": {"type": "string", "enum": ["summary", "events", "action_items"]}
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
