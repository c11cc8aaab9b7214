package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kubev2v/workpark/test/e2e/service"
)

type configuration struct {
	APIUrl         string
	RequestTimeout time.Duration
	ReadyTimeout   time.Duration
	Workers        int
	Rounds         int
}

var (
	cfg    configuration
	apiSvc *service.WorkparkSvc
)

func (c configuration) Validate() error {
	u, err := url.Parse(c.APIUrl)
	if err != nil {
		return fmt.Errorf("failed to parse api url: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("api url must have a scheme and a host")
	}
	if c.Workers < 1 || c.Rounds < 1 {
		return fmt.Errorf("workers and rounds must be positive, got %d and %d", c.Workers, c.Rounds)
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.APIUrl, "api-url", "http://localhost:8000", "Base url of a running workpark server")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", time.Minute, "Timeout of a single API call")
	flag.DurationVar(&cfg.ReadyTimeout, "ready-timeout", 30*time.Second, "How long to wait for the server health probe")
	flag.IntVar(&cfg.Workers, "workers", 8, "Workers of each stress run")
	flag.IntVar(&cfg.Rounds, "rounds", 500, "Rounds of each stress run")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	apiSvc = service.NewWorkparkSvc(cfg.APIUrl, cfg.RequestTimeout)

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
