package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/workpark/api/v1"
)

const (
	apiV1RunsPath      = "/api/v1/runs"
	apiV1SchedulerPath = "/api/v1/scheduler"
	healthPath         = "/health"
	metricsPath        = "/metrics"
)

// WorkparkSvc is an HTTP client for a running workpark server.
type WorkparkSvc struct {
	baseURL string
	client  *http.Client
}

func NewWorkparkSvc(baseURL string, timeout time.Duration) *WorkparkSvc {
	return &WorkparkSvc{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Health returns nil when the server answers its health probe.
func (s *WorkparkSvc) Health() error {
	_, err := s.do(http.MethodGet, healthPath, nil, http.StatusOK)
	return err
}

// WaitReady polls the health probe with exponential backoff until it answers or
// maxWait elapses.
func (s *WorkparkSvc) WaitReady(ctx context.Context, maxWait time.Duration) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if err := s.Health(); err != nil {
			zap.S().Debugw("workpark not ready yet", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxWait),
	)
	return err
}

// Metrics returns the raw Prometheus exposition.
func (s *WorkparkSvc) Metrics() (string, error) {
	body, err := s.do(http.MethodGet, metricsPath, nil, http.StatusOK)
	return string(body), err
}

// CreateRun executes a stress run and returns it. A non-201 answer is reported
// as an *APIError.
func (s *WorkparkSvc) CreateRun(req v1.RunRequest) (*v1.Run, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	body, err := s.do(http.MethodPost, apiV1RunsPath, payload, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	var run v1.Run
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &run, nil
}

func (s *WorkparkSvc) GetRun(id string) (*v1.Run, error) {
	body, err := s.do(http.MethodGet, apiV1RunsPath+"/"+id, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var run v1.Run
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &run, nil
}

func (s *WorkparkSvc) ListRuns(query url.Values) (*v1.RunListResponse, error) {
	path := apiV1RunsPath
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	body, err := s.do(http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var list v1.RunListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode run list: %w", err)
	}
	return &list, nil
}

func (s *WorkparkSvc) Scheduler() (*v1.SchedulerStatus, error) {
	body, err := s.do(http.MethodGet, apiV1SchedulerPath, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var status v1.SchedulerStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to decode scheduler status: %w", err)
	}
	return &status, nil
}

// APIError carries an unexpected HTTP status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (s *WorkparkSvc) do(method, path string, payload []byte, expected int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	zap.S().Debugw("calling workpark", "method", method, "path", path)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != expected {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
