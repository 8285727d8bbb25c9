// Package docs holds the OpenAPI description served under /swagger.
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
        "/v1/auth/register": {"post": {"tags": ["Auth"], "summary": "Register a customer account"}},
        "/v1/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in"}},
        "/v1/auth/refresh-token": {"post": {"tags": ["Auth"], "summary": "Refresh a token pair"}},
        "/v1/auth/change-password": {"post": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Change password"}},
        "/v1/cars": {
            "get": {"tags": ["Car"], "summary": "List cars"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Car"], "summary": "Create a car"}
        },
        "/v1/cars/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Car"], "summary": "Update car status by name"}},
        "/v1/cars/return-info": {"get": {"tags": ["Car"], "summary": "Car return info by name"}},
        "/v1/cars/{id}": {
            "get": {"tags": ["Car"], "summary": "Get a car"},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Car"], "summary": "Update a car"},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Car"], "summary": "Delete a car"}
        },
        "/v1/cars/{id}/return-info": {"get": {"tags": ["Car"], "summary": "Car return info"}},
        "/v1/cars/{id}/toggle-status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Car"], "summary": "Toggle car status"}},
        "/v1/bookings": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Book a car"},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Clear reservations"}
        },
        "/v1/bookings/cancel": {"post": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Cancel a booking by name"}},
        "/v1/bookings/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Cancel a booking"}},
        "/v1/reservations": {"get": {"security": [{"BearerAuth": []}], "tags": ["Reservation"], "summary": "Get all reservations"}},
        "/v1/reservations/mine": {"get": {"security": [{"BearerAuth": []}], "tags": ["Reservation"], "summary": "Get my reservations"}},
        "/v1/reservations/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Reservation"], "summary": "Get a reservation"}},
        "/v1/invoices": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Invoice"], "summary": "Get all invoices"},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Invoice"], "summary": "Clear invoices"}
        },
        "/v1/invoices/mine": {"get": {"security": [{"BearerAuth": []}], "tags": ["Invoice"], "summary": "Get my invoices"}},
        "/v1/invoices/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Invoice"], "summary": "Get an invoice"}},
        "/v1/invoices/reservation/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Invoice"], "summary": "Get the invoice of a reservation"}},
        "/v1/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Get all users"},
            "post": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Create a new user"}
        },
        "/v1/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Get a user by ID"},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Update a user by ID"},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Delete a user by ID"}
        },
        "/v1/availability/sweep": {"post": {"security": [{"BearerAuth": []}], "tags": ["Availability"], "summary": "Run an availability sweep"}}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "RentWheels API",
	Description:      "Car rental catalog, bookings, invoices and availability.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
