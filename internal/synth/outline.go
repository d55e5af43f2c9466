package synth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rcalloway/notesynth/internal/genai"
	"github.com/rcalloway/notesynth/internal/script"
)

// Outline is the section-heading plan for one document.
type Outline struct {
	Title    string
	Sections []string
}

// Planner derives a title and an ordered list of section headings from the
// top-ranked facts and the user instruction.
type Planner struct {
	gen     genai.TextGenerator
	profile script.Profile
	log     *slog.Logger
}

func NewPlanner(gen genai.TextGenerator, profile script.Profile, log *slog.Logger) *Planner {
	return &Planner{gen: gen, profile: profile, log: log}
}

const outlineFactLimit = 5

// Plan asks the generator for section headings grounded in a compact fact
// summary. If fewer than two valid headings survive parsing, a fixed generic
// outline is used instead of failing the run.
func (p *Planner) Plan(ctx context.Context, facts []Fact, instruction string) (Outline, error) {
	outline := Outline{Title: p.title(facts)}

	var sb strings.Builder
	sb.WriteString("A document is being drafted for this request: ")
	sb.WriteString(instruction)
	sb.WriteString("\n\nKey facts from the reference material:\n")
	n := len(facts)
	if n > outlineFactLimit {
		n = outlineFactLimit
	}
	for _, f := range facts[:n] {
		sb.WriteString("- ")
		sb.WriteString(f.Subject)
		sb.WriteString(": ")
		sb.WriteString(f.Action)
		sb.WriteString("\n")
	}
	sb.WriteString("\nList 3 to 4 section headings for the document, one per line.\n")
	sb.WriteString("No numbering, no bullets, no explanations. ")
	sb.WriteString("Write the headings in the same language as the request.")

	resp, err := p.gen.Generate(ctx, sb.String(), genai.Options{
		MaxTokens:   256,
		Temperature: 0.4,
	})
	if err != nil {
		return Outline{}, fmt.Errorf("plan outline: %w", err)
	}

	sections := p.parseHeadings(resp)
	if len(sections) < 2 {
		p.log.Warn("outline parsing yielded too few headings, using fallback",
			"parsed", len(sections))
		sections = append([]string(nil), p.profile.FallbackSections...)
	}
	outline.Sections = sections
	return outline, nil
}

var (
	headingBulletRe      = regexp.MustCompile(`^\s*(?:[-*•·]|\d+\s*[.)、．]?)\s*`)
	headingPlaceholderRe = regexp.MustCompile(`(?i)example|e\.g\.|heading \d|section \d|<|>|\.\.\.|…`)
)

const maxSections = 4

// parseHeadings keeps response lines that survive bullet stripping, are not
// examples or placeholders, and match the target script.
func (p *Planner) parseHeadings(resp string) []string {
	var out []string
	for _, line := range strings.Split(resp, "\n") {
		line = headingBulletRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.Trim(line, "#*"))
		if line == "" {
			continue
		}
		if headingPlaceholderRe.MatchString(line) {
			continue
		}
		if !p.profile.Matches(line) {
			continue
		}
		out = append(out, line)
		if len(out) == maxSections {
			break
		}
	}
	return out
}

// title is derived deterministically from the top-ranked fact.
func (p *Planner) title(facts []Fact) string {
	if len(facts) == 0 {
		return p.profile.GenericTitle
	}
	return strings.TrimSpace(facts[0].Subject) + p.profile.TitleSuffix
}
