package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"lrtdigest/internal/app"
	"lrtdigest/internal/metrics"
)

func main() {
	daemon := flag.Bool("daemon", false, "stay resident and run at the digest hours (07:00, 12:00, 18:00 local)")
	flag.Parse()

	// Optional .env for local runs; in CI the secrets are real env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	if *daemon {
		runDaemon()
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Digest run failed: %v", err)
	}
}

func runDaemon() {
	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Europe/Vilnius"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", tz, err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc("0 7,12,18 * * *", func() {
		if err := app.Run(context.Background()); err != nil {
			log.Printf("Digest run failed: %v", err)
			metrics.Global.SetError(err.Error())
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule digest: %v", err)
	}

	c.Start()
	log.Printf("Daemon started, digests scheduled at 07:00/12:00/18:00 %s", tz)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	<-c.Stop().Done()
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
