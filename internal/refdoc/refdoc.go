package refdoc

import "strings"

// Document is parsed reference material attached to a note: a title plus the
// flat sequence of sections the source file decomposed into.
type Document struct {
	Title    string
	Sections []Section
}

// Section is one titled span of reference text.
type Section struct {
	Title string
	Text  string
}

// Flatten joins all section text into the single reference string the
// synthesis pipeline consumes. Section titles are kept inline so heading
// context survives chunking.
func (d *Document) Flatten() string {
	var sb strings.Builder
	for _, sec := range d.Sections {
		if sec.Title != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(sec.Title)
			sb.WriteString("\n")
		} else if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.TrimSpace(sec.Text))
	}
	return strings.TrimSpace(sb.String())
}

// Append adds a section, skipping empty ones.
func (d *Document) Append(title, text string) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(text) == "" {
		return
	}
	d.Sections = append(d.Sections, Section{Title: title, Text: text})
}
