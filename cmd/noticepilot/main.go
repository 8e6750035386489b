package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/noticepilot/internal/auth"
	"github.com/alexanderramin/noticepilot/internal/calendar"
	"github.com/alexanderramin/noticepilot/internal/cli"
	"github.com/alexanderramin/noticepilot/internal/config"
	"github.com/alexanderramin/noticepilot/internal/intelligence"
	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/alexanderramin/noticepilot/internal/logging"
	"github.com/alexanderramin/noticepilot/internal/pdftext"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// NOTICEPILOT_CONFIG points at an explicit config file.
	cfg, err := config.Load(os.Getenv("NOTICEPILOT_CONFIG"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Source != "" {
		log.Debug("config loaded", "file", cfg.Source)
	}

	gate, err := auth.NewGate(cfg.Auth.Password, cfg.Auth.PasswordHash)
	if err != nil && !errors.Is(err, auth.ErrNoSecret) {
		return err
	}

	modelCfg := cfg.ModelConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if modelCfg.LogCalls {
		observer = llm.NewLogObserver(log)
	}

	// A failed client keeps the tool usable; every model action reports
	// the cause instead.
	client, modelErr := llm.New(ctx, modelCfg, observer)
	if modelErr != nil {
		log.Error("model client unavailable", "provider", modelCfg.Provider, "error", modelErr)
		client = llm.NewUnavailableClient(modelErr)
	}

	app := &cli.App{
		Extractor: pdftext.NewPDFExtractor(cfg.PDF.PageLimit),
		Analysis:  intelligence.NewExtractionService(client),
		Drafting:  intelligence.NewDraftingService(client),
		Calendar:  calendar.Exporter{},
		Gate:      gate,
		OutputDir: cfg.Output.Dir,
		ModelErr:  modelErr,
	}

	// Forms and the clause matrix need a terminal on both ends.
	app.IsInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
