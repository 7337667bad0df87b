// Package docs holds the swagger document served on /swagger.
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
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Search published events",
                "parameters": [
                    {"type": "string", "name": "text", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "categories", "in": "query"},
                    {"type": "boolean", "name": "paid", "in": "query"},
                    {"type": "string", "name": "rangeStart", "in": "query"},
                    {"type": "string", "name": "rangeEnd", "in": "query"},
                    {"type": "boolean", "name": "onlyAvailable", "in": "query"},
                    {"type": "string", "enum": ["EVENT_DATE", "VIEWS"], "name": "sort", "in": "query"},
                    {"type": "integer", "name": "from", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/event.EventShortDto"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Public"],
                "summary": "Get a published event",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/event.EventFullDto"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/users/{userId}/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Private"],
                "summary": "Create an event",
                "parameters": [
                    {"type": "integer", "name": "userId", "in": "path", "required": true},
                    {"name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/event.NewEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/event.EventFullDto"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/users/{userId}/events/{eventId}/requests": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Private"],
                "summary": "Confirm or reject participation requests",
                "parameters": [
                    {"type": "integer", "name": "userId", "in": "path", "required": true},
                    {"type": "integer", "name": "eventId", "in": "path", "required": true},
                    {"name": "update", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.EventRequestStatusUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/request.EventRequestStatusUpdateResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/admin/events/{eventId}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Edit, publish or reject an event",
                "parameters": [
                    {"type": "integer", "name": "eventId", "in": "path", "required": true},
                    {"name": "update", "in": "body", "required": true, "schema": {"$ref": "#/definitions/event.UpdateEventAdminRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/event.EventFullDto"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/admin/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get moderation audit logs",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "apierror.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "reason": {"type": "string"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "timestamp": {"type": "string", "example": "2030-01-01 10:00:00"}
            }
        },
        "event.Location": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}
        },
        "event.NewEventRequest": {
            "type": "object",
            "required": ["annotation", "category", "description", "eventDate", "location", "title"],
            "properties": {
                "annotation": {"type": "string", "minLength": 20, "maxLength": 2000},
                "category": {"type": "integer"},
                "description": {"type": "string", "minLength": 20, "maxLength": 7000},
                "eventDate": {"type": "string", "example": "2030-01-01 10:00:00"},
                "location": {"$ref": "#/definitions/event.Location"},
                "paid": {"type": "boolean"},
                "participantLimit": {"type": "integer"},
                "requestModeration": {"type": "boolean"},
                "title": {"type": "string", "minLength": 3, "maxLength": 120}
            }
        },
        "event.UpdateEventAdminRequest": {
            "type": "object",
            "properties": {
                "annotation": {"type": "string"},
                "category": {"type": "integer"},
                "description": {"type": "string"},
                "eventDate": {"type": "string"},
                "location": {"$ref": "#/definitions/event.Location"},
                "paid": {"type": "boolean"},
                "participantLimit": {"type": "integer"},
                "requestModeration": {"type": "boolean"},
                "stateAction": {"type": "string", "enum": ["PUBLISH_EVENT", "REJECT_EVENT"]},
                "title": {"type": "string"}
            }
        },
        "event.EventShortDto": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "annotation": {"type": "string"},
                "eventDate": {"type": "string"},
                "paid": {"type": "boolean"},
                "confirmedRequests": {"type": "integer"},
                "views": {"type": "integer"}
            }
        },
        "event.EventFullDto": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "annotation": {"type": "string"},
                "description": {"type": "string"},
                "eventDate": {"type": "string"},
                "createdOn": {"type": "string"},
                "publishedOn": {"type": "string"},
                "location": {"$ref": "#/definitions/event.Location"},
                "paid": {"type": "boolean"},
                "participantLimit": {"type": "integer"},
                "requestModeration": {"type": "boolean"},
                "state": {"type": "string", "enum": ["PENDING", "PUBLISHED", "CANCELED"]},
                "confirmedRequests": {"type": "integer"},
                "views": {"type": "integer"}
            }
        },
        "request.EventRequestStatusUpdateRequest": {
            "type": "object",
            "required": ["requestIds", "status"],
            "properties": {
                "requestIds": {"type": "array", "items": {"type": "integer"}},
                "status": {"type": "string", "enum": ["CONFIRMED", "REJECTED"]}
            }
        },
        "request.EventRequestStatusUpdateResult": {
            "type": "object",
            "properties": {
                "confirmedRequests": {"type": "array", "items": {"type": "object"}},
                "rejectedRequests": {"type": "array", "items": {"type": "object"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Explore With Me API",
	Description:      "Event publishing, participation requests, comments and compilations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
