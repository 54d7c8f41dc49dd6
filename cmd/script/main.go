package main

import (
	"context"
	"log"

	"roiengine/cmd"
	"roiengine/internal/logger"
	"roiengine/internal/service"

	_ "github.com/lib/pq"
)

// One-shot job run for the scheduler. Exits nonzero on a whole-run failure;
// a per-portfolio failure is logged inside the service and does not fail
// the process.
func main() {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(handler)

	ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())

	result, err := handler.RoiJobService.RunPortfolioRoiJob(ctx, service.RunPortfolioRoiJobInput{
		Trigger: "scheduler",
	})
	if err != nil {
		log.Fatal(err)
	}
	if result.Skipped != "" {
		log.Printf("run skipped: %s", result.Skipped)
	}
}
