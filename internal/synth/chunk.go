package synth

import (
	"fmt"
	"strings"
)

// Chunk is a bounded, overlapping slice of the reference text sized for one
// extraction call.
type Chunk struct {
	Text  string
	Index int
}

// Chunker splits raw reference text into sentence-aware overlapping segments.
type Chunker struct {
	maxSize int // Window size in runes.
	overlap int // Overlap with the previous chunk in runes.
}

// NewChunker validates the window parameters. An overlap at or above the
// window size would never advance and is rejected up front.
func NewChunker(maxSize, overlap int) (*Chunker, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", maxSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= maxSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", overlap, maxSize)
	}
	return &Chunker{maxSize: maxSize, overlap: overlap}, nil
}

// sentence terminators across both supported scripts, plus line breaks
var breakRunes = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true,
	'\n': true,
}

// Chunk walks the text in windows of maxSize runes. Each window is cut at the
// nearest sentence terminator or line break found no earlier than 70% into the
// window; otherwise at the hard boundary. The next window starts overlap runes
// before the cut. Deterministic for identical input.
func (c *Chunker) Chunk(text string) []Chunk {
	runes := []rune(text)
	var chunks []Chunk

	add := func(seg []rune) {
		trimmed := strings.TrimSpace(string(seg))
		if trimmed == "" {
			return
		}
		chunks = append(chunks, Chunk{Text: trimmed, Index: len(chunks)})
	}

	pos := 0
	for pos < len(runes) {
		end := pos + c.maxSize
		if end >= len(runes) {
			add(runes[pos:])
			break
		}

		cut := end
		minCut := pos + (c.maxSize*7)/10
		for i := end - 1; i >= minCut; i-- {
			if breakRunes[runes[i]] {
				cut = i + 1
				break
			}
		}

		add(runes[pos:cut])

		next := cut - c.overlap
		if next <= pos {
			next = cut
		}
		pos = next
	}

	return chunks
}
