// Package http provides HTTP handlers and routing for the fileops REST API.
//
// This package implements all HTTP endpoints using the Gin framework,
// including health checks, service listing, discovery and tool execution.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/discover, /services/execute
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, logger, version)
//	router.GET("/health", handlers.Health)
//	router.POST("/services/execute", handlers.ExecuteService)
package http
