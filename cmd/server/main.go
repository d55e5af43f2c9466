package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rcalloway/notesynth/internal/api"
	"github.com/rcalloway/notesynth/internal/config"
	"github.com/rcalloway/notesynth/internal/genai"
	"github.com/rcalloway/notesynth/internal/jobs"
	"github.com/rcalloway/notesynth/internal/notedoc"
	"github.com/rcalloway/notesynth/internal/script"
	"github.com/rcalloway/notesynth/internal/synth"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Generation client with latency stats and bounded retry.
	stats := genai.NewStats(time.Hour)
	client := genai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	client.Stats = stats
	gen := genai.NewRetrier(client, genai.RetryPolicy{
		MaxRetries: cfg.GenMaxRetries,
		Delay:      genai.FixedDelay(cfg.GenRetryDelay),
	}, log)

	// Synthesis pipeline.
	profile := script.ForScript(script.Script(cfg.TargetScript))
	pipeline, err := synth.New(gen, profile, synth.Config{
		ChunkSize:            cfg.ChunkSize,
		ChunkOverlap:         cfg.ChunkOverlap,
		MinReferenceChars:    cfg.MinReferenceChars,
		MaxFacts:             cfg.MaxFacts,
		SectionFacts:         cfg.SectionFacts,
		MaxConcurrentExtract: cfg.MaxConcurrentExtract,
		SimilarityThreshold:  0.7,
		Weights:              synth.DefaultRankWeights(),
	}, log)
	if err != nil {
		log.Error("invalid pipeline configuration", "error", err)
		os.Exit(1)
	}

	// Note document sink (optional; jobs without a note_id skip it).
	var sink *notedoc.Client
	if cfg.NotedocAPIKey != "" {
		sink = notedoc.NewClient(cfg.NotedocURL, cfg.NotedocAPIKey)
	}

	runner := jobs.NewRunner(pipeline, sink, log, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL)
	runner.Start(ctx)

	srv := api.NewServer(runner, pipeline, stats, cfg.AnthropicModel, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		runner.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
		if sink != nil {
			sink.Close()
		}
	}()

	log.Info("starting notesynth", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
