// Package store implements the data access layer for workpark.
//
// Stress run results are persisted in DuckDB so that runs from the CLI and
// from the HTTP API can be compared later.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                           RunStore                              │
//	│                              ▼                                  │
//	│                            runs                                 │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Tables created by LOCAL MIGRATIONS (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  runs              │  One row per stress run                     │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// Durations are stored as microseconds (max_delay_us, duration_us).
//
// # Query Building
//
// Reads are built with squirrel. List and Count accept ListOption values
// that decorate the select builder:
//
//	runs, err := st.Runs().List(ctx,
//	    store.ByMode("coordinator"),
//	    store.ByStatus("completed"),
//	    store.WithLimit(20),
//	)
//
// # Usage Example
//
//	db, err := store.NewDB(filepath.Join(dataFolder, "workpark.duckdb"))
//	if err != nil {
//	    return err
//	}
//	if err := migrations.Run(ctx, db); err != nil {
//	    return err
//	}
//	st := store.NewStore(db)
//	defer st.Close()
//
//	err = st.Runs().Save(ctx, run)
package store
