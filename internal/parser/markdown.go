package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/rcalloway/notesynth/internal/refdoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Each heading starts a
// new section; text under it accumulates into that section.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*refdoc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &refdoc.Document{Title: titleFromFilename(filename, ".md", ".markdown")}

	currentTitle := ""
	var currentText bytes.Buffer
	flush := func() {
		t := strings.TrimSpace(currentText.String())
		if t != "" || currentTitle != "" {
			doc.Append(currentTitle, t)
		}
		currentText.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			flush()
			currentTitle = string(heading.Text(src))
			continue
		}
		if t := extractText(n, src); t != "" {
			if currentText.Len() > 0 {
				currentText.WriteString("\n\n")
			}
			currentText.WriteString(t)
		}
	}
	flush()

	return doc, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
