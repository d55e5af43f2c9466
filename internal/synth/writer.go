package synth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rcalloway/notesynth/internal/genai"
	"github.com/rcalloway/notesynth/internal/script"
)

// Writer drafts prose for one section, constrained to the facts it was given.
type Writer struct {
	gen     genai.TextGenerator
	profile script.Profile
}

func NewWriter(gen genai.TextGenerator, profile script.Profile) *Writer {
	return &Writer{gen: gen, profile: profile}
}

const writerFactLimit = 3

// Write drafts 2-3 sentences for the section. With zero facts it returns the
// fixed placeholder without calling the generator; prose with no grounding
// would be pure hallucination.
func (w *Writer) Write(ctx context.Context, sectionTitle string, facts []Fact) (string, error) {
	if len(facts) == 0 {
		return w.profile.EmptySectionText, nil
	}

	var sb strings.Builder
	sb.WriteString("Write the body of a document section titled: ")
	sb.WriteString(sectionTitle)
	sb.WriteString("\n\nUse ONLY these facts:\n")
	n := len(facts)
	if n > writerFactLimit {
		n = writerFactLimit
	}
	for _, f := range facts[:n] {
		sb.WriteString("- ")
		sb.WriteString(f.summary())
		sb.WriteString("\n")
	}
	sb.WriteString("\nWrite 2 to 3 sentences. Do not add information beyond the facts above.\n")
	sb.WriteString("Write in the same language as the section title. ")
	sb.WriteString("Output only the section body, no heading and no labels.")

	resp, err := w.gen.Generate(ctx, sb.String(), genai.Options{
		MaxTokens:   512,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("write section %q: %w", sectionTitle, err)
	}
	return stripLabels(resp), nil
}

var labelPrefixRe = regexp.MustCompile(`(?i)^\s*(?:content|body|text|section|answer)\s*[::]\s*`)

// stripLabels removes leading label artifacts the model sometimes prepends.
func stripLabels(s string) string {
	s = strings.TrimSpace(s)
	s = labelPrefixRe.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(s)
}
