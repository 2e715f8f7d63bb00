package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searchserver"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	docsPath := flag.String("docs", "", "path to a tab separated document file")
	dedup := flag.Bool("dedup", false, "remove duplicate documents after loading")
	parallel := flag.Bool("parallel", false, "use the parallel execution policy")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	stop, err := tokenizer.NewStopWords(cfg.Engine.StopWords)
	if err != nil {
		slog.Error("invalid stop words", "error", err)
		os.Exit(1)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		ms := metrics.NewServer(cfg.Metrics.Port, reg)
		if err := ms.Start(); err != nil {
			slog.Error("failed to start metrics server", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ms.Shutdown(ctx)
		}()
	}

	server := searchserver.New(stop,
		searchserver.FromConfig(cfg.Engine),
		searchserver.WithMetrics(m),
	)
	slog.Info("starting search server",
		"stop_words", len(stop),
		"workers", cfg.Engine.Workers,
		"parallel", *parallel,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &app{
		server:   server,
		cfg:      cfg,
		metrics:  m,
		parallel: *parallel,
		logger:   logger.WithComponent("console"),
	}
	if *docsPath != "" {
		f, err := os.Open(*docsPath)
		if err != nil {
			slog.Error("failed to open documents", "path", *docsPath, "error", err)
			os.Exit(1)
		}
		loaded, err := app.loadDocuments(f)
		f.Close()
		if err != nil {
			slog.Error("failed to load documents", "path", *docsPath, "error", err)
			os.Exit(1)
		}
		slog.Info("documents loaded", "count", loaded, "path", *docsPath)
	}
	if *dedup {
		app.removeDuplicates()
	}

	if err := app.serve(ctx, os.Stdin, os.Stdout); err != nil {
		slog.Error("console error", "error", err)
		os.Exit(1)
	}
	slog.Info("search server stopped")
}
