// ZITEL Gateway Prometheus Exporter
//
// This exporter reads dashboard telemetry from a ZITEL LTE router over
// the Leano protocol and exposes it in Prometheus format.
//
// Usage:
//
//	zitel-exporter [flags]
//
// Flags:
//
//	-config string    Path to config file (default: no config file)
//	-port int         Port to serve metrics on (default: 9184)
//	-gateway string   Router URL (default: http://192.168.0.1)
//	-user string      Router username (default: admin)
//	-pass string      Router password (default: admin)
//	-version          Show version information
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/northvector/zitel/config"
	"github.com/northvector/zitel/leano"
	"github.com/northvector/zitel/metrics"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", 0, "Port to serve metrics on (default: 9184)")
	gatewayURL := flag.String("gateway", "", "Router URL (default: http://192.168.0.1)")
	username := flag.String("user", "", "Router username (default: admin)")
	password := flag.String("pass", "", "Router password (default: admin)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("zitel-exporter %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load environment variables
	config.LoadConfigFromEnv(cfg)

	// Override with command line flags
	if *port != 0 {
		cfg.Metrics.Port = *port
	}
	if *gatewayURL != "" {
		cfg.Gateway.URL = *gatewayURL
	}
	if *username != "" {
		cfg.Gateway.Username = *username
	}
	if *password != "" {
		cfg.Gateway.Password = *password
	}

	log.Printf("Starting ZITEL Gateway Exporter %s", version)
	log.Printf("Gateway URL: %s", cfg.Gateway.URL)
	log.Printf("Metrics Port: %d", cfg.Metrics.Port)

	// Create the protocol client and log in once for the process
	// lifetime; the session token does not expire on observed firmware.
	client, err := leano.New(cfg.ToClientConfig())
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	session, err := client.Authenticate(context.Background())
	if err != nil {
		log.Fatalf("Failed to authenticate: %v", err)
	}
	if session.Degraded() {
		log.Printf("Warning: device issued an empty session token; scrapes may be rejected")
	}

	// Create metrics collector and register it with Prometheus
	collector := metrics.NewCollector(client)
	prometheus.MustRegister(collector)

	// Create HTTP server
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>
<head><title>ZITEL Gateway Exporter</title></head>
<body>
<h1>ZITEL Gateway Exporter</h1>
<p>Version: ` + version + `</p>
<p>Gateway: ` + cfg.Gateway.URL + `</p>
<p><a href="` + cfg.Metrics.Path + `">Metrics</a></p>
</body>
</html>`))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Serving metrics at http://localhost:%d%s", cfg.Metrics.Port, cfg.Metrics.Path)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}

	<-ctx.Done()
	log.Println("Exporter stopped")
}
