package synth

import (
	"strings"
	"testing"
)

func TestNewChunker_RejectsOverlapAtOrAboveSize(t *testing.T) {
	if _, err := NewChunker(100, 100); err == nil {
		t.Fatal("expected error for overlap == size")
	}
	if _, err := NewChunker(100, 150); err == nil {
		t.Fatal("expected error for overlap > size")
	}
	if _, err := NewChunker(0, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := NewChunker(100, -1); err == nil {
		t.Fatal("expected error for negative overlap")
	}
}

func TestChunker_ShortTextYieldsOneChunk(t *testing.T) {
	c, err := NewChunker(500, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chunks := c.Chunk("A short reference text.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "A short reference text." {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
}

func TestChunker_EmptyTextYieldsNoChunks(t *testing.T) {
	c, _ := NewChunker(500, 50)
	if got := c.Chunk(""); len(got) != 0 {
		t.Fatalf("expected 0 chunks, got %d", len(got))
	}
	if got := c.Chunk("   \n\n  "); len(got) != 0 {
		t.Fatalf("expected 0 chunks for whitespace input, got %d", len(got))
	}
}

func TestChunker_CutsAtSentenceBoundary(t *testing.T) {
	// 90 runes of sentence one, terminator at position 89 which is past 70%
	// of a 100-rune window, so the cut should land right after it.
	sentence := strings.Repeat("a", 88) + ". "
	text := sentence + strings.Repeat("b", 120)

	c, _ := NewChunker(100, 10)
	chunks := c.Chunk(text)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, ".") {
		t.Errorf("expected first chunk to end at sentence boundary, got %q", chunks[0].Text)
	}
}

func TestChunker_HardCutWhenNoBoundaryInTail(t *testing.T) {
	// No terminator anywhere: every cut is at the hard window boundary.
	text := strings.Repeat("x", 250)
	c, _ := NewChunker(100, 20)
	chunks := c.Chunk(text)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	if len([]rune(chunks[0].Text)) != 100 {
		t.Errorf("expected hard cut at 100 runes, got %d", len([]rune(chunks[0].Text)))
	}
}

func TestChunker_CoverageWithoutGaps(t *testing.T) {
	// With zero overlap and no trimmable whitespace, concatenating all
	// chunks must reproduce the input exactly.
	text := strings.Repeat("abcdefghij", 35)
	c, _ := NewChunker(100, 0)
	chunks := c.Chunk(text)

	var sb strings.Builder
	for _, ch := range chunks {
		sb.WriteString(ch.Text)
	}
	if sb.String() != text {
		t.Fatalf("chunks do not cover input: got %d runes, want %d",
			len(sb.String()), len(text))
	}
}

func TestChunker_OverlapCarriesTailForward(t *testing.T) {
	text := strings.Repeat("y", 150)
	c, _ := NewChunker(100, 30)
	chunks := c.Chunk(text)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// Second chunk starts 30 runes before the first cut: 150-100+30 = 80.
	if len([]rune(chunks[1].Text)) != 80 {
		t.Errorf("expected second chunk of 80 runes, got %d", len([]rune(chunks[1].Text)))
	}
}

func TestChunker_Deterministic(t *testing.T) {
	text := strings.Repeat("The launch was approved on March 3. ", 40)
	c, _ := NewChunker(200, 40)

	a := c.Chunk(text)
	b := c.Chunk(text)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
