package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the lead API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>CohortLab API · Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Admin operations carry the bearerAuth requirement; it is only enforced when
// an admin secret or Keycloak realm is configured.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "cohortlab-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearerAuth": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "parameters": {
      "id": { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } },
      "page": { "name": "page", "in": "query", "schema": { "type": "integer", "default": 1 } },
      "limit": { "name": "limit", "in": "query", "schema": { "type": "integer", "default": 10, "maximum": 100 } },
      "status": { "name": "status", "in": "query", "schema": { "type": "string" } }
    }
  },
  "paths": {
    "/api/newsletter/subscribe": {
      "post": {
        "summary": "Subscribe or reactivate a newsletter subscription",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "required": ["name", "email"], "properties": { "name": { "type": "string" }, "email": { "type": "string" }, "source": { "type": "string", "enum": ["blog_page", "homepage", "footer", "popup", "other"] }, "preferences": { "type": "object" } } } } } },
        "responses": { "201": { "description": "subscribed" }, "200": { "description": "reactivated" }, "400": { "description": "validation failed" }, "409": { "description": "already subscribed" } }
      }
    },
    "/api/newsletter/unsubscribe": {
      "post": { "summary": "Unsubscribe an email", "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "email": { "type": "string" } } } } } }, "responses": { "200": { "description": "unsubscribed" }, "404": { "description": "not subscribed" } } }
    },
    "/api/newsletter/preferences": {
      "put": { "summary": "Update topic preferences of an active subscription", "responses": { "200": { "description": "updated" }, "404": { "description": "not subscribed" } } }
    },
    "/api/newsletter/stats": {
      "get": { "summary": "Subscription counters", "responses": { "200": { "description": "total, active, inactive" } } }
    },
    "/api/newsletter/subscribers": {
      "get": { "summary": "List active subscribers", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/page" }, { "$ref": "#/components/parameters/limit" }], "responses": { "200": { "description": "paginated subscribers" } } }
    },
    "/api/newsletter/subscribers/{id}": {
      "get": { "summary": "Get a subscriber", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "subscriber" }, "404": { "description": "not found" } } }
    },
    "/api/developer": {
      "post": { "summary": "Submit a developer application (multipart with resume, or JSON with resumeGoogleDriveUrl)", "responses": { "201": { "description": "submitted" }, "400": { "description": "validation or resume error" }, "409": { "description": "duplicate email" } } },
      "get": { "summary": "List developer applications", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/page" }, { "$ref": "#/components/parameters/limit" }, { "$ref": "#/components/parameters/status" }], "responses": { "200": { "description": "paginated applications" } } }
    },
    "/api/developer/{id}": {
      "get": { "summary": "Get a developer application", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "application" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a developer application and its resume", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "deleted" } } }
    },
    "/api/developer/{id}/status": {
      "put": { "summary": "Update application status", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "updated" }, "400": { "description": "invalid status" } } }
    },
    "/api/developer/{id}/resume": {
      "get": { "summary": "Download the stored resume", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "file" }, "404": { "description": "no resume" } } }
    },
    "/api/marketer": {
      "post": { "summary": "Submit a marketer application", "responses": { "201": { "description": "submitted" }, "409": { "description": "duplicate email" } } },
      "get": { "summary": "List marketer applications", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/page" }, { "$ref": "#/components/parameters/limit" }, { "$ref": "#/components/parameters/status" }], "responses": { "200": { "description": "paginated applications" } } }
    },
    "/api/marketer/{id}": {
      "get": { "summary": "Get a marketer application", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "application" } } },
      "delete": { "summary": "Delete a marketer application", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "deleted" } } }
    },
    "/api/marketer/{id}/status": {
      "put": { "summary": "Update application status", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "updated" } } }
    },
    "/api/marketer/{id}/resume": {
      "get": { "summary": "Download the stored resume", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "file" } } }
    },
    "/api/partner": {
      "post": { "summary": "Submit a partner application", "responses": { "201": { "description": "submitted" }, "409": { "description": "duplicate email" } } },
      "get": { "summary": "List partner applications", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/page" }, { "$ref": "#/components/parameters/limit" }, { "$ref": "#/components/parameters/status" }, { "name": "partnershipType", "in": "query", "schema": { "type": "string" } }], "responses": { "200": { "description": "paginated applications" } } }
    },
    "/api/partner/{id}": {
      "get": { "summary": "Get a partner application", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "application" } } },
      "delete": { "summary": "Delete a partner application", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "deleted" } } }
    },
    "/api/partner/{id}/status": {
      "put": { "summary": "Update status, notes and optionally partnership type", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "updated" } } }
    },
    "/api/partner/{id}/partnership-type": {
      "put": { "summary": "Update partnership type", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "updated" }, "400": { "description": "invalid partnership type" } } }
    },
    "/api/consultancy": {
      "post": { "summary": "Request a consultation", "responses": { "201": { "description": "submitted" }, "409": { "description": "request within the last 24 hours" } } },
      "get": { "summary": "List consultancy requests", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/page" }, { "$ref": "#/components/parameters/limit" }, { "$ref": "#/components/parameters/status" }], "responses": { "200": { "description": "paginated requests" } } }
    },
    "/api/consultancy/{id}": {
      "get": { "summary": "Get a consultancy request", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "request" } } },
      "put": { "summary": "Update status, notes or priority", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete a consultancy request", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "deleted" } } }
    },
    "/api/book-call": {
      "post": { "summary": "Book a call", "responses": { "201": { "description": "scheduled" }, "400": { "description": "validation failed or time in the past" }, "409": { "description": "already scheduled or slot unavailable" } } },
      "get": { "summary": "List booked calls", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/page" }, { "$ref": "#/components/parameters/limit" }, { "$ref": "#/components/parameters/status" }, { "name": "date", "in": "query", "schema": { "type": "string", "format": "date" } }], "responses": { "200": { "description": "paginated calls" } } }
    },
    "/api/book-call/availability/{date}": {
      "get": { "summary": "Booked slots for a UTC day", "parameters": [{ "name": "date", "in": "path", "required": true, "schema": { "type": "string", "format": "date" } }], "responses": { "200": { "description": "booked slots" }, "400": { "description": "invalid date" } } }
    },
    "/api/book-call/{id}": {
      "get": { "summary": "Get a booked call", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "call" } } },
      "put": { "summary": "Update call details", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete a booked call", "security": [{ "bearerAuth": [] }], "parameters": [{ "$ref": "#/components/parameters/id" }], "responses": { "200": { "description": "deleted" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
