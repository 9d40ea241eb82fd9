package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hetulpatel/MantleCoop/internal/app"
	"github.com/hetulpatel/MantleCoop/internal/config"
	"github.com/hetulpatel/MantleCoop/internal/eligibility"
	"github.com/hetulpatel/MantleCoop/internal/logging"
)

func main() {
	history := flag.String("history", "", "account history text")
	file := flag.String("file", "", "read account history from file (- for stdin)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("[eligibility-check] config: %v", err)
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)
	defer logging.Sync()

	text, err := readHistory(*history, *file, os.Stdin)
	if err != nil {
		logging.Fatalf("[eligibility-check] read input: %v", err)
	}

	svc, err := app.NewService(ctx, cfg, nil, logging.L())
	if err != nil {
		logging.Fatalf("[eligibility-check] service init: %v", err)
	}
	defer svc.Close()

	state := svc.Check(ctx, eligibility.State{}, text)
	if err := writeState(os.Stdout, state); err != nil {
		logging.Fatalf("[eligibility-check] write output: %v", err)
	}
	if state.Failed() {
		os.Exit(1)
	}
}

// readHistory prefers -history, then -file, then stdin.
func readHistory(flagValue, path string, stdin io.Reader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("stdin: %w", err)
	}
	return string(data), nil
}

func writeState(w io.Writer, state eligibility.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
