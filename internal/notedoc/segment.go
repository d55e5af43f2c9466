package notedoc

import "strings"

// Kind distinguishes how the host editor should render a segment.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindDivider   Kind = "divider"
)

// Segment is one ordered piece of an assembled document, split small enough
// for the host editor to insert as an individual block.
type Segment struct {
	Kind Kind
	Text string
}

// SplitSegments cuts a document at heading and blank-line boundaries into the
// ordered segment sequence the insertion sink accepts. Content order is
// preserved exactly.
func SplitSegments(document string) []Segment {
	var segments []Segment
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			segments = append(segments, Segment{Kind: KindParagraph, Text: t})
		}
		current.Reset()
	}

	for _, line := range strings.Split(document, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
			segments = append(segments, Segment{
				Kind: KindHeading,
				Text: strings.TrimSpace(strings.TrimLeft(trimmed, "#")),
			})
		case trimmed == "---":
			flush()
			segments = append(segments, Segment{Kind: KindDivider, Text: ""})
		default:
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	return segments
}
