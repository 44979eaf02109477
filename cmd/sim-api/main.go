package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/jobs"
	"github.com/wyhar1/execsim/jobs/cron"
	"github.com/wyhar1/execsim/routes"
	"github.com/wyhar1/execsim/server"
	"github.com/wyhar1/execsim/workers"
	"github.com/wyhar1/execsim/workers/daemons"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	startingCash, err := decimal.NewFromString(config.Getenv("STARTING_CASH", "1000000"))
	if err != nil {
		config.Logger.Fatalf("Invalid STARTING_CASH: %v", err)
	}

	interval, err := strconv.ParseUint(config.Getenv("SNAPSHOT_INTERVAL", "60"), 10, 64)
	if err != nil || interval == 0 {
		config.Logger.Fatalf("Invalid SNAPSHOT_INTERVAL: %s", os.Getenv("SNAPSHOT_INTERVAL"))
	}

	srv := server.NewEngineServer(startingCash, nil)
	cronJobs := []jobs.Job{&cron.PnLSnapshotJob{Server: srv, Interval: interval}}

	if config.InfluxDB != nil {
		exporter := workers.NewTradeExporter(config.InfluxDB)
		srv.Subscribe(exporter.Process)
		cronJobs = append(cronJobs, &cron.TradeFlushJob{Exporter: exporter, Interval: interval})
	}

	daemons.NewCronJob(cronJobs...).Start()

	go func() {
		addr := ":" + config.Getenv("METRICS_PORT", "9090")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		config.Logger.Infof("Serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			config.Logger.Errorf("Metrics server failed: %v", err)
		}
	}()

	app := routes.SetupRouter(srv)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		config.Logger.Info("Shutting down simulator...")
		if err := app.Shutdown(); err != nil {
			config.Logger.Errorf("Shutdown failed: %v", err)
		}
	}()

	if err := app.Listen(":" + config.Getenv("API_PORT", "3000")); err != nil {
		config.Logger.Fatalf("API server failed: %v", err)
	}

	if config.InfluxDB != nil {
		config.InfluxDB.Close()
	}
}
