package synth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rcalloway/notesynth/internal/genai"
)

const extractionPrompt = `Extract 2 to 4 atomic facts from the reference text below.
Write each fact as a block in exactly this format, nothing else:

Fact 1:
Subject: who or what the fact is about
Action: what the subject does or did
Details: specifics such as numbers, dates, names

Rules:
- Only state information present in the text. Never invent or speculate.
- One distinct claim per fact.
- Keep each field to a single line.

--- Reference text ---
`

// Extractor turns one chunk into candidate facts via prompted extraction.
type Extractor struct {
	gen genai.TextGenerator
	log *slog.Logger
}

func NewExtractor(gen genai.TextGenerator, log *slog.Logger) *Extractor {
	return &Extractor{gen: gen, log: log}
}

// Extract issues one generation call for the chunk and parses the structured
// response. Malformed blocks in the response are dropped, not retried; the
// model's output is advisory, not authoritative.
func (e *Extractor) Extract(ctx context.Context, chunk Chunk) ([]Fact, error) {
	resp, err := e.gen.Generate(ctx, extractionPrompt+chunk.Text, genai.Options{
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("extract chunk %d: %w", chunk.Index, err)
	}

	facts, dropped := ParseFacts(resp)
	if dropped > 0 {
		e.log.Warn("dropped malformed fact blocks", "chunk", chunk.Index, "dropped", dropped)
	}
	return facts, nil
}
