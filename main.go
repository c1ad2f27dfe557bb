package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"fpick/internal/config"
	"fpick/internal/eventbus"
	"fpick/internal/index"
	"fpick/internal/preview"
	"fpick/internal/ui"
)

func main() {
	var targetDir string
	var configPath string
	flag.StringVar(&targetDir, "dir", "", "Directory to search files in")
	flag.StringVar(&targetDir, "d", "", "Directory to search files in (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to a config file")
	flag.Parse()

	if targetDir == "" && flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}
	if targetDir == "" {
		var err error
		targetDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Set up logging; the terminal belongs to the TUI
	logFile, err := os.OpenFile("fpick.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load configuration
	configSvc := config.NewService()
	var cfg *config.Config
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	cfg.BaseDir = absDir

	// Wire up the search engine
	bus := eventbus.New()
	defer bus.Close()

	frecency := index.NewFrecencyTracker(index.DefaultFrecencyPath())
	engine := index.New(cfg, bus, absDir, frecency)

	cache := preview.NewCache(cfg.PreviewCacheSize, nil)
	loader := preview.NewLoader(cfg.MaxPreviewLines, cfg.MaxPreviewBytes, nil, nil)

	model := ui.NewModel(cfg, engine, cache, loader, func() error {
		return engine.StartScan(ctx)
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward domain events into the UI loop
	for _, eventType := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventIndexUpdated,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	finalModel, err := p.Run()
	if err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	engine.StopScan()

	// Print the selection so fpick composes with shell pipelines
	if m, ok := finalModel.(*ui.Model); ok && m.Selected() != "" {
		fmt.Println(m.Selected())
	}
}
