package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"recruitai/internal/app"
	"recruitai/internal/config"
	"recruitai/internal/usecase"
)

// fetcher pulls one batch of submissions through the same client, cache and
// throttle as the server and prints it as JSON.
func main() {
	formID := flag.String("form", "", "form id (defaults to JOTFORM_FORM_ID)")
	search := flag.String("search", "", "filter by name or email")
	status := flag.String("status", "", "filter by status")
	analytics := flag.Bool("analytics", false, "print the analytics report instead of records")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags|log.LUTC)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	var out any
	if *analytics {
		out, err = c.Analytics.Analytics(ctx, strings.TrimSpace(*formID))
	} else {
		out, err = c.Applications.List(ctx, usecase.ApplicationListParams{
			FormID: strings.TrimSpace(*formID),
			Search: *search,
			Status: *status,
		})
	}
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode failed: %v", err)
	}
}
