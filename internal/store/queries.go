package store

const tableRuns = "runs"

// Run columns, in scan order.
var runColumns = []string{
	"id",
	"mode",
	"status",
	"workers",
	"rounds",
	"max_delay_us",
	"expected",
	"observed",
	"duration_us",
	"started_at",
}
