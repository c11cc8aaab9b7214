// Package main is the entry point for the workpark CLI.
package main

import (
	"os"

	"github.com/kubev2v/workpark/cmd/workpark/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
