// Package server provides the HTTP server for workpark.
//
// The server uses the Gin web framework. It exposes the /api/v1 routes
// registered by the caller together with a health probe and the Prometheus
// metrics of the worker pool.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request logging, "http" logger)         │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery with stack)     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /health      liveness probe                                  │
//	│  /metrics     promhttp handler over pkg/metrics.Registry      │
//	│  /api/v1      handlers registered via callback                │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// ServerMode "prod" runs gin in release mode, "dev" in debug mode. Both serve
// plain HTTP.
//
// # Server Lifecycle
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//
//	// Blocks until ctx is done, then shuts down gracefully.
//	err = srv.Start(ctx)
//
// Stop(ctx) may also be called directly; it waits for in-flight requests.
// Unknown routes answer 404 with a JSON error body.
package server
