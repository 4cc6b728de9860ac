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
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>devfolio — Swagger</title>
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

// Minimal OpenAPI document covering the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "devfolio-backend", "version": "v0.1.0" },
  "paths": {
    "/api/contact": {
      "post": {
        "summary": "Submit a contact form message",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"message":{"type":"string"}}}}}},
        "responses": { "200": { "description": "message stored" }, "400": { "description": "validation or deliverability failure" } }
      },
      "get": { "summary": "List stored messages (admin)", "responses": { "200": { "description": "messages" }, "401": { "description": "missing or invalid token" } } }
    },
    "/api/chatbot": {
      "post": { "summary": "Ask the portfolio assistant", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"message":{"type":"string"},"conversationHistory":{"type":"array"}}}}}}, "responses": { "200": { "description": "assistant reply, possibly degraded" } } }
    },
    "/api/projects": {
      "get": { "summary": "List projects in display order", "responses": { "200": { "description": "projects" } } },
      "post": { "summary": "Create a project (admin)", "responses": { "201": { "description": "created" } } }
    },
    "/api/projects/reorder": {
      "put": { "summary": "Atomically renumber all projects (admin)", "responses": { "200": { "description": "reordered" }, "400": { "description": "id list is not a full permutation" } } }
    },
    "/api/experience": {
      "get": { "summary": "List experience entries", "responses": { "200": { "description": "entries" } } }
    },
    "/api/blog": {
      "get": { "summary": "List published blog posts", "responses": { "200": { "description": "posts" } } }
    },
    "/api/admin/login": {
      "post": { "summary": "Exchange credentials for an access token", "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/api/resume/download": {
      "get": { "summary": "Download the resume PDF", "responses": { "200": { "description": "file" }, "404": { "description": "no resume on disk" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
