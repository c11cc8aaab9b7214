package v1

import "time"

// RunRequest is the body of POST /runs.
type RunRequest struct {
	Mode       string `json:"mode"`
	Workers    int    `json:"workers"`
	Rounds     int    `json:"rounds"`
	MaxDelayUs int64  `json:"maxDelayUs"`
}

type Run struct {
	Id               string    `json:"id"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status"`
	Workers          int       `json:"workers"`
	Rounds           int       `json:"rounds"`
	MaxDelayUs       int64     `json:"maxDelayUs"`
	Expected         int64     `json:"expected"`
	Observed         int64     `json:"observed"`
	Lost             int64     `json:"lost"`
	DurationMs       float64   `json:"durationMs"`
	WakeupsPerSecond float64   `json:"wakeupsPerSecond"`
	StartedAt        time.Time `json:"startedAt"`
}

type RunListResponse struct {
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	Total     int   `json:"total"`
	Runs      []Run `json:"runs"`
}

// GetRunsParams are the query parameters of GET /runs.
type GetRunsParams struct {
	Mode     *[]string `form:"mode"`
	Status   *[]string `form:"status"`
	Page     *int      `form:"page"`
	PageSize *int      `form:"pageSize"`
}

type SchedulerStatus struct {
	Workers       int    `json:"workers"`
	Parked        int    `json:"parked"`
	Queued        int    `json:"queued"`
	Submitted     int    `json:"submitted"`
	Completed     int    `json:"completed"`
	Failed        int    `json:"failed"`
	CreditPending bool   `json:"creditPending"`
	BenchState    string `json:"benchState"`
	LastRunId     string `json:"lastRunId,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
