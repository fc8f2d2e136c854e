// Package main is the entry point for the fileops service daemon.
//
// The daemon exposes file management operations (scanning, listing,
// transfer, deletion, concatenation, metadata, text and document reads)
// as callable tools over a REST API, for consumption by workflow
// automation hosts.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./fileopsd -port 8000
//
//	# Development mode (colored logs, debug level)
//	./fileopsd -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
