// Command leadctl is the operator CLI for the CohortLab lead API.
package main

import (
	"os"

	"github.com/cohortlab/cohortlab/backend/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
