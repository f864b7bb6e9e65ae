package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HisQu/paredros-debugger/internal/grammar"
	"github.com/HisQu/paredros-debugger/internal/repl"
)

func main() {
	grammarPath := flag.String("grammar", "configs/abc.yaml", "Path to grammar YAML file")
	inputPath := flag.String("input", "", "Path to input text file")
	metricsAddr := flag.String("metrics-addr", "", "Optional HTTP listen address for /metrics")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *inputPath == "" {
		slog.Error("input file is required (-input)")
		os.Exit(1)
	}
	inputText, err := os.ReadFile(*inputPath)
	if err != nil {
		slog.Error("failed to read input", "err", err)
		os.Exit(1)
	}

	// ── Load grammar ──────────────────────────────────────────────────────────
	loader, err := grammar.NewLoader(*grammarPath)
	if err != nil {
		slog.Error("failed to load grammar", "err", err)
		os.Exit(1)
	}
	if err := grammar.Validate(loader.Grammar()); err != nil {
		slog.Error("grammar validation failed", "err", err)
		os.Exit(1)
	}

	// ── Parse once and build the traversal graph ──────────────────────────────
	r, err := repl.New(loader, string(inputText), os.Stdin, os.Stdout)
	if err != nil {
		slog.Error("failed to start session", "err", err)
		os.Exit(1)
	}
	s := r.Session()
	slog.Info("traversal graph built",
		"session", s.Graph.SessionID,
		"status", s.Graph.Status,
		"steps", s.Graph.PathLen(),
		"states", s.Network.StateCount())

	// ── Grammar change watcher ─────────────────────────────────────────────────
	loader.OnChange(func(*grammar.Grammar) {
		r.NotifyGrammarChanged()
		slog.Info("grammar file changed on disk")
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("grammar watcher unavailable (reload hint disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── Optional metrics endpoint ──────────────────────────────────────────────
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", promhttp.Handler())
		mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		srv := &http.Server{
			Addr:         *metricsAddr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		go func() {
			slog.Info("metrics listening", "addr", *metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server error", "err", err)
			}
		}()
	}

	// ── Interactive session ────────────────────────────────────────────────────
	if err := r.Run(); err != nil {
		slog.Error("session error", "err", err)
		os.Exit(1)
	}
	slog.Info("goodbye")
}
