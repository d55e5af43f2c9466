package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rcalloway/notesynth/internal/genai"
	"github.com/rcalloway/notesynth/internal/script"
)

// ErrNoFacts is returned when no facts survive extraction across all chunks.
// Nothing downstream can proceed meaningfully without grounding.
var ErrNoFacts = errors.New("no facts extracted from reference text")

// Stage identifies where in the pipeline a progress event was emitted.
type Stage string

const (
	StageExtracting Stage = "extracting"
	StagePlanning   Stage = "planning"
	StageWriting    Stage = "writing"
	StageAssembling Stage = "assembling"
	StageComplete   Stage = "complete"
	StageCancelled  Stage = "cancelled"
	StageError      Stage = "error"
)

// ProgressEvent is purely observational; only the pipeline produces these.
type ProgressEvent struct {
	Stage    Stage  `json:"stage"`
	Message  string `json:"message"`
	Progress int    `json:"progress"` // 0..100, non-decreasing within a run
}

// ProgressFunc receives progress events synchronously. It must not block the
// pipeline indefinitely.
type ProgressFunc func(ProgressEvent)

// Config tunes one pipeline instance. Zero values fall back to defaults.
type Config struct {
	ChunkSize            int
	ChunkOverlap         int
	MinReferenceChars    int
	MaxFacts             int
	SectionFacts         int
	MaxConcurrentExtract int
	SimilarityThreshold  float64
	Weights              RankWeights
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:            2000,
		ChunkOverlap:         200,
		MinReferenceChars:    800,
		MaxFacts:             10,
		SectionFacts:         4,
		MaxConcurrentExtract: 1,
		SimilarityThreshold:  0.7,
		Weights:              DefaultRankWeights(),
	}
}

// Pipeline is the multi-stage, fact-grounded document synthesis coordinator.
// Stateless between runs; safe to share across concurrent invocations.
type Pipeline struct {
	cfg     Config
	profile script.Profile
	log     *slog.Logger

	chunker   *Chunker
	extractor *Extractor
	ranker    *Ranker
	planner   *Planner
	matcher   *Matcher
	writer    *Writer
}

func New(gen genai.TextGenerator, profile script.Profile, cfg Config, log *slog.Logger) (*Pipeline, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 2000
	}
	if cfg.MinReferenceChars <= 0 {
		cfg.MinReferenceChars = 800
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

	chunker, err := NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		profile:   profile,
		log:       log,
		chunker:   chunker,
		extractor: NewExtractor(gen, log),
		ranker:    NewRanker(cfg.Weights, cfg.SimilarityThreshold, cfg.MaxFacts),
		planner:   NewPlanner(gen, profile, log),
		matcher:   NewMatcher(profile, cfg.SectionFacts),
		writer:    NewWriter(gen, profile),
	}, nil
}

// ShouldActivate is the pure gate deciding whether a request warrants the
// multi-stage path. All four conditions must hold: the instruction is in the
// target script, it carries report/draft intent, and the reference text is
// non-empty and at least MinReferenceChars long. Callers failing the gate are
// expected to use a simpler single-pass generation instead.
func (p *Pipeline) ShouldActivate(instruction, referenceText string) bool {
	ref := strings.TrimSpace(referenceText)
	if ref == "" {
		return false
	}
	if len([]rune(ref)) < p.cfg.MinReferenceChars {
		return false
	}
	if script.Detect(instruction) != p.profile.Script {
		return false
	}
	return p.profile.HasIntent(instruction)
}

// Run executes the full pipeline and returns the assembled document text.
// Stages run in order; cancellation is checked between stages and iterations.
func (p *Pipeline) Run(ctx context.Context, instruction, referenceText string, onProgress ProgressFunc) (string, error) {
	emit := func(stage Stage, message string, progress int) {
		if onProgress != nil {
			onProgress(ProgressEvent{Stage: stage, Message: message, Progress: progress})
		}
	}
	fail := func(stageName string, err error) (string, error) {
		emit(StageError, fmt.Sprintf("%s: %v", stageName, err), 100)
		return "", err
	}
	cancelled := func() (string, error) {
		emit(StageCancelled, "run cancelled", 100)
		return "", ctx.Err()
	}

	if err := ctx.Err(); err != nil {
		return cancelled()
	}

	chunks := p.chunker.Chunk(referenceText)
	emit(StageExtracting, fmt.Sprintf("extracting facts from %d chunks", len(chunks)), 10)

	allFacts, err := p.extractAll(ctx, chunks)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return cancelled()
		}
		return fail("extracting", err)
	}
	if len(allFacts) == 0 {
		return fail("extracting", ErrNoFacts)
	}

	ranked := p.ranker.Rank(allFacts)
	p.log.Info("facts ranked", "extracted", len(allFacts), "kept", len(ranked))

	if ctx.Err() != nil {
		return cancelled()
	}
	emit(StagePlanning, "planning document outline", 40)

	outline, err := p.planner.Plan(ctx, ranked, instruction)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return cancelled()
		}
		return fail("planning", err)
	}

	sections := make([]Section, 0, len(outline.Sections))
	total := len(outline.Sections)
	for i, title := range outline.Sections {
		if ctx.Err() != nil {
			return cancelled()
		}
		emit(StageWriting,
			fmt.Sprintf("writing section %d of %d: %s", i+1, total, title),
			40+(i*50)/total)

		relevant := p.matcher.Match(title, ranked)
		content, err := p.writer.Write(ctx, title, relevant)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return cancelled()
			}
			return fail("writing", err)
		}
		sections = append(sections, Section{Title: title, Content: content, Facts: relevant})
	}

	if ctx.Err() != nil {
		return cancelled()
	}
	emit(StageAssembling, "assembling document", 95)
	doc := Assemble(outline.Title, sections)

	emit(StageComplete, "report complete", 100)
	return doc, nil
}

// extractAll runs the extractor over every chunk with bounded concurrency.
// Results are collected per source index so first-seen deduplication stays
// defined over chunk order, not completion order. Per-chunk failures are
// logged and swallowed; the chunk simply contributes nothing.
func (p *Pipeline) extractAll(ctx context.Context, chunks []Chunk) ([]Fact, error) {
	factsByChunk := make([][]Fact, len(chunks))
	sem := make(chan struct{}, p.cfg.MaxConcurrentExtract)
	done := make(chan int, len(chunks))

	for i, chunk := range chunks {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		go func(i int, chunk Chunk) {
			defer func() { <-sem }()
			facts, err := p.extractor.Extract(ctx, chunk)
			if err != nil {
				p.log.Warn("chunk extraction failed, continuing", "chunk", chunk.Index, "error", err)
			} else {
				factsByChunk[i] = facts
			}
			done <- i
		}(i, chunk)
	}

	for range chunks {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []Fact
	for _, facts := range factsByChunk {
		all = append(all, facts...)
	}
	return all, nil
}
