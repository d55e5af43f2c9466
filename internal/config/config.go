package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	NotesynthAPIKey string

	// Generation service
	AnthropicAPIKey string
	AnthropicModel  string
	GenMaxRetries   int
	GenRetryDelay   time.Duration

	// Note document sink
	NotedocURL    string
	NotedocAPIKey string

	// Synthesis pipeline
	TargetScript         string
	MinReferenceChars    int
	ChunkSize            int
	ChunkOverlap         int
	MaxFacts             int
	SectionFacts         int
	MaxConcurrentExtract int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		NotesynthAPIKey: os.Getenv("NOTESYNTH_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		GenMaxRetries:   envInt("GEN_MAX_RETRIES", 2),
		GenRetryDelay:   envDuration("GEN_RETRY_DELAY", 1*time.Second),

		NotedocURL:    envOr("NOTEDOC_URL", "http://localhost:8080"),
		NotedocAPIKey: os.Getenv("NOTEDOC_API_KEY"),

		TargetScript:         envOr("TARGET_SCRIPT", "latin"),
		MinReferenceChars:    envInt("MIN_REFERENCE_CHARS", 800),
		ChunkSize:            envInt("CHUNK_SIZE", 2000),
		ChunkOverlap:         envInt("CHUNK_OVERLAP", 200),
		MaxFacts:             envInt("MAX_FACTS", 10),
		SectionFacts:         envInt("SECTION_FACTS", 4),
		MaxConcurrentExtract: envInt("MAX_CONCURRENT_EXTRACT", 1),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.GenMaxRetries < 0 {
		cfg.GenMaxRetries = 2
	}
	if cfg.MinReferenceChars <= 0 {
		cfg.MinReferenceChars = 800
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 2000
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 200
	}
	if cfg.MaxFacts <= 0 {
		cfg.MaxFacts = 10
	}
	if cfg.SectionFacts <= 0 {
		cfg.SectionFacts = 4
	}
	if cfg.MaxConcurrentExtract <= 0 {
		cfg.MaxConcurrentExtract = 1
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.NotesynthAPIKey == "" {
		return fmt.Errorf("NOTESYNTH_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.TargetScript != "latin" && c.TargetScript != "cjk" {
		return fmt.Errorf("TARGET_SCRIPT must be latin or cjk, got %q", c.TargetScript)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
