// Package registry provides the service registry for fileops provider management.
//
// The registry maintains a catalog of available service providers and handles
// service discovery and tool execution for the workflow host.
//
// Components:
//   - Registry: Central service catalog
//   - Provider: Interface for service implementations
//   - Service discovery with relevance scoring
//
// Features:
//   - Thread-safe service registration
//   - Category-based filtering
//   - Intent-based discovery with scoring
//   - Tool execution with context passing
//   - Service statistics
//
// Example Usage:
//
//	reg := registry.NewRegistry()
//	reg.Register(filesProvider)
//	result, err := reg.Execute(ctx, "files.scan", params, opCtx)
package registry
