/*
Package main provides end-to-end tests for a running workpark server.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, Ginkgo runner
	├── tests.go         Ginkgo specs against the HTTP API
	├── doc.go           This file
	└── service/
	    └── workpark.go  WorkparkSvc, an HTTP client for the server API

# Running

Start a server, then run the suite against it:

	workpark serve --workers 4 &
	go run ./test/e2e -api-url http://localhost:8000 -workers 8 -rounds 500

The suite is Ordered. It creates runs and reads them back, then checks the
conflict answer for concurrent runs. The last specs expect an idle pool whose
workers are all parked.
*/
package main
