package errors

import (
	goerrors "errors"
	"fmt"
)

// ResourceNotFoundError is returned when a stored resource does not exist.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewRunNotFoundError(id string) error {
	return &ResourceNotFoundError{Kind: "run", ID: id}
}

func IsResourceNotFoundError(err error) bool {
	var target *ResourceNotFoundError
	return goerrors.As(err, &target)
}

// BenchInProgressError is returned when a stress run is requested while
// another one is still running.
type BenchInProgressError struct{}

func (e *BenchInProgressError) Error() string {
	return "a stress run is already in progress"
}

func NewBenchInProgressError() error {
	return &BenchInProgressError{}
}

func IsBenchInProgressError(err error) bool {
	var target *BenchInProgressError
	return goerrors.As(err, &target)
}

// WorkerPanicError carries the value recovered from a panicking work function.
type WorkerPanicError struct {
	Value any
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

func NewWorkerPanicError(v any) error {
	return &WorkerPanicError{Value: v}
}

func IsWorkerPanicError(err error) bool {
	var target *WorkerPanicError
	return goerrors.As(err, &target)
}

// InvalidParamsError is returned when caller supplied parameters are rejected.
type InvalidParamsError struct {
	Msg string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameters: %s", e.Msg)
}

func NewInvalidParamsError(format string, args ...any) error {
	return &InvalidParamsError{Msg: fmt.Sprintf(format, args...)}
}

func IsInvalidParamsError(err error) bool {
	var target *InvalidParamsError
	return goerrors.As(err, &target)
}
