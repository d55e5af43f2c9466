package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/rcalloway/notesynth/internal/refdoc"
)

// TextParser handles plain text files. Blank-line separated paragraphs become
// individual sections.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*refdoc.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &refdoc.Document{Title: titleFromFilename(filename, ".txt")}

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			doc.Append("", current.String())
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
