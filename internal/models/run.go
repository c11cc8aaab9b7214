package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RunMode string

const (
	// RunModeCoordinator - workers call Wait directly on a coordinator
	RunModeCoordinator RunMode = "coordinator"
	// RunModeScheduler - work is submitted to a scheduler and futures are awaited
	RunModeScheduler RunMode = "scheduler"
)

func ParseRunMode(s string) (RunMode, error) {
	switch s {
	case "coordinator":
		return RunModeCoordinator, nil
	case "scheduler":
		return RunModeScheduler, nil
	default:
		return "", fmt.Errorf("invalid run mode: %s", s)
	}
}

type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusTimeout   RunStatus = "timeout"
)

// Run is the outcome of one stress run.
type Run struct {
	ID        uuid.UUID     `json:"id"`
	Mode      RunMode       `json:"mode"`
	Status    RunStatus     `json:"status"`
	Workers   int           `json:"workers"`
	Rounds    int           `json:"rounds"`
	MaxDelay  time.Duration `json:"maxDelay"`
	Expected  int64         `json:"expected"`
	Observed  int64         `json:"observed"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"startedAt"`
}

// Lost returns how many expected wakeups were never observed.
func (r Run) Lost() int64 {
	return r.Expected - r.Observed
}
