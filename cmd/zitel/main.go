// ZITEL Router Control
//
// Interactive command-line client for ZITEL LTE routers speaking the
// Leano protocol: a live status dashboard, neighbour-cell scans, DMZ
// forwarding and band locking.
//
// Usage:
//
//	zitel [flags]
//
// Flags:
//
//	-config string    Path to config file (default: no config file)
//	-gateway string   Router URL (default: http://192.168.0.1)
//	-user string      Router username (default: admin)
//	-pass string      Router password (default: admin)
//	-interval string  Dashboard refresh interval (default: 3s)
//	-timeout string   Command timeout (default: 30s)
//	-version          Show version information
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/northvector/zitel/config"
	"github.com/northvector/zitel/leano"
	"github.com/northvector/zitel/shell"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	gatewayURL := flag.String("gateway", "", "Router URL (default: http://192.168.0.1)")
	username := flag.String("user", "", "Router username (default: admin)")
	password := flag.String("pass", "", "Router password (default: admin)")
	interval := flag.String("interval", "", "Dashboard refresh interval (default: 3s)")
	timeout := flag.String("timeout", "", "Command timeout (default: 30s)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("zitel %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LoadConfigFromEnv(cfg)

	// Command-line flags override config file and environment.
	if *gatewayURL != "" {
		cfg.Gateway.URL = *gatewayURL
	}
	if *username != "" {
		cfg.Gateway.Username = *username
	}
	if *password != "" {
		cfg.Gateway.Password = *password
	}
	if *interval != "" {
		d, err := time.ParseDuration(*interval)
		if err != nil {
			log.Fatalf("Invalid -interval %q: %v", *interval, err)
		}
		cfg.Monitor.PollInterval = config.Duration(d)
	}
	if *timeout != "" {
		d, err := time.ParseDuration(*timeout)
		if err != nil {
			log.Fatalf("Invalid -timeout %q: %v", *timeout, err)
		}
		cfg.Gateway.CommandTimeout = config.Duration(d)
	}

	client, err := leano.New(cfg.ToClientConfig())
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C anywhere, menu prompt or live view, ends the session.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		fmt.Print("\033[?25h") // restore the cursor before going away
		os.Exit(0)
	}()

	log.Printf("Connecting to %s", cfg.Gateway.URL)
	session, err := client.Authenticate(ctx)
	if err != nil {
		log.Fatalf("Authentication failed: %v", err)
	}
	if session.Degraded() {
		log.Printf("Warning: device issued an empty session token; commands may be rejected")
	}

	sh := shell.New(client, os.Stdin, os.Stdout, shell.Options{
		PollInterval: cfg.Monitor.PollInterval.Std(),
	})
	if err := sh.Run(ctx); err != nil {
		log.Fatalf("Session error: %v", err)
	}
}
