package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>patitas-api - Swagger</title>
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

// Minimal OpenAPI document describing the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "patitas-api", "version": "v0.1.0" },
  "paths": {
    "/auth/register": {
      "post": { "summary": "Create a client account", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "201": { "description": "account created, tokens returned" }, "409": { "description": "email already registered" } } }
    },
    "/auth/login": {
      "post": { "summary": "Login with email and password", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/faqs": { "get": { "summary": "List FAQ entries", "responses": { "200": { "description": "faqs" } } } },
    "/api/posts": { "get": { "summary": "List blog posts, newest first", "parameters": [{"name":"category","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "posts" } } } },
    "/api/posts/{slug}": { "get": { "summary": "Get a blog post by slug", "responses": { "200": { "description": "post" }, "404": { "description": "unknown slug" } } } },
    "/api/reviews": {
      "get": { "summary": "List approved reviews (max 10, newest first)", "responses": { "200": { "description": "reviews" } } },
      "post": { "summary": "Submit a review", "responses": { "201": { "description": "review accepted" }, "400": { "description": "invalid review" } } }
    },
    "/api/v1/me": { "get": { "summary": "Get authenticated user info", "responses": { "200": { "description": "user claims" } } } },
    "/api/v1/pets": {
      "get": { "summary": "List own pets", "responses": { "200": { "description": "pets" } } },
      "post": { "summary": "Register a pet", "responses": { "201": { "description": "pet created" } } }
    },
    "/api/v1/appointments": {
      "get": { "summary": "List own appointments", "responses": { "200": { "description": "appointments" } } },
      "post": { "summary": "Book an appointment slot", "responses": { "201": { "description": "booked" }, "409": { "description": "slot already taken" } } }
    },
    "/api/v1/appointments/slots": {
      "get": { "summary": "Slot availability for a date", "parameters": [{"name":"date","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "slots" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
