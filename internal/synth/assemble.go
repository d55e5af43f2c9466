package synth

import (
	"fmt"
	"strings"
)

// Section is one drafted part of the final document. Final once Content is
// set; never mutated afterward.
type Section struct {
	Title   string
	Content string
	Facts   []Fact
}

// Assemble concatenates the title, the sections in outline order, and a
// provenance footer. Pure; never fails.
func Assemble(title string, sections []Section) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n")

	totalFacts := 0
	for _, sec := range sections {
		sb.WriteString("\n## ")
		sb.WriteString(sec.Title)
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(sec.Content))
		sb.WriteString("\n")
		totalFacts += len(sec.Facts)
	}

	sb.WriteString("\n---\n")
	sb.WriteString(fmt.Sprintf("Compiled from %d sections and %d extracted facts.\n",
		len(sections), totalFacts))
	return sb.String()
}
