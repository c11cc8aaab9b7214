// Package handlers implements the HTTP API layer for workpark.
//
// Handlers delegate to the services layer and focus on request validation,
// response formatting and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Parameter parsing and pagination                             │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│          BenchService │ RunService │ Scheduler                  │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is mounted with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
//	┌────────┬──────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint     │ Description                              │
//	├────────┼──────────────┼──────────────────────────────────────────┤
//	│ GET    │ /runs        │ List stored runs, newest first           │
//	│ POST   │ /runs        │ Execute a stress run and store it        │
//	│ GET    │ /runs/{id}   │ Get one stored run                       │
//	│ GET    │ /scheduler   │ Worker pool snapshot and bench state     │
//	└────────┴──────────────┴──────────────────────────────────────────┘
//
// # Run Handlers
//
// GET /runs query parameters:
//
//	┌──────────┬──────────┬─────────────────────────────────────────┐
//	│ Parameter│ Type     │ Description                             │
//	├──────────┼──────────┼─────────────────────────────────────────┤
//	│ mode     │ []string │ coordinator and/or scheduler            │
//	│ status   │ []string │ completed and/or timeout                │
//	│ page     │ int      │ Page number (default: 1)                │
//	│ pageSize │ int      │ Items per page (default: 20, max: 100)  │
//	└──────────┴──────────┴─────────────────────────────────────────┘
//
// POST /runs request:
//
//	{ "mode": "coordinator", "workers": 8, "rounds": 1000, "maxDelayUs": 50 }
//
// The call blocks until the run finished. A run that hit the configured
// timeout is still stored and returned with status "timeout".
//
// Errors:
//   - 400 Bad Request: malformed body, unknown mode, non-positive workers or rounds
//   - 404 Not Found: unknown run id
//   - 409 Conflict: a run is already in progress
package handlers
