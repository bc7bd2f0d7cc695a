package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"covidcharts/src/common"
	"covidcharts/src/job"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	common.InitLogger(cfg.LogEnv, cfg.LogDir)
	defer common.Logger.Sync()
	defer common.HandlePanic()
	common.Logger.Sugar().Info("Starting overview charts...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components := []common.Component{
		job.NewOverview(cfg),
	}
	for _, component := range components {
		if err := component.Run(ctx); err != nil {
			common.Logger.Sugar().Fatalf("Failed to run overview: %v", err)
		}
	}
}
