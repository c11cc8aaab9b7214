// Package services implements the business logic layer for workpark.
//
// Services sit between the HTTP handlers (or the CLI) and the store. They
// own the shared scheduler and the run history.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints) / CLI
//	    │
//	    ▼
//	Services Layer
//	    ├── BenchService ──► Scheduler, bench, Store
//	    └── RunService ────► Store
//
// # BenchService
//
// BenchService executes stress runs (see internal/bench). A run is submitted
// as one work item to the shared scheduler, so it occupies exactly one pool
// worker while it drives its own parked goroutines.
//
// State Machine:
//
//	┌───────┐   Run    ┌─────────┐
//	│ Ready │ ───────► │ Running │
//	└───────┘ ◄─────── └─────────┘
//	          stored / failed
//
// Key behaviors:
//   - Only one run can be in progress at a time (returns BenchInProgressError otherwise)
//   - Every run is bounded by the configured timeout; a run cut short is
//     stored with status "timeout"
//   - Closing the scheduler cancels a run in progress
//   - Finished runs are saved before Run returns
//
// Usage:
//
//	benchSrv := services.NewBenchService(sched, st, 30*time.Second)
//	run, err := benchSrv.Run(ctx, bench.Params{Mode: models.RunModeCoordinator, Workers: 4, Rounds: 1000})
//	status := benchSrv.Status()
//
// # RunService
//
// RunService provides read-only access to stored runs with filtering by mode
// and status and limit/offset pagination.
//
//	runSrv := services.NewRunService(st)
//	result, err := runSrv.List(ctx, services.RunListParams{Modes: []string{"coordinator"}, Limit: 20})
//
// # Thread Safety
//
// BenchService state is protected by a sync.Mutex. RunService is stateless
// and relies on the store for thread safety.
package services
