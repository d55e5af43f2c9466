package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsStartSections(t *testing.T) {
	input := `# Project Atlas

Intro paragraph before any subsection.

## Timeline

Launch is planned for March.

## Budget

The budget is $2.4M.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plan.md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Title != "plan" {
		t.Errorf("expected title 'plan', got %q", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d: %+v", len(doc.Sections), doc.Sections)
	}
	if doc.Sections[0].Title != "Project Atlas" {
		t.Errorf("unexpected first section title: %q", doc.Sections[0].Title)
	}
	if !strings.Contains(doc.Sections[1].Text, "March") {
		t.Errorf("timeline section missing content: %q", doc.Sections[1].Text)
	}
	if doc.Sections[2].Title != "Budget" {
		t.Errorf("unexpected third section title: %q", doc.Sections[2].Title)
	}
}

func TestMarkdownParser_ContentBeforeFirstHeading(t *testing.T) {
	input := "Leading paragraph with no heading.\n\n# Later Heading\n\nBody.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "" {
		t.Errorf("leading section should be untitled, got %q", doc.Sections[0].Title)
	}
	if !strings.Contains(doc.Sections[0].Text, "Leading paragraph") {
		t.Errorf("leading content lost: %q", doc.Sections[0].Text)
	}
}

func TestMarkdownParser_ListItemsRetained(t *testing.T) {
	input := "# Items\n\n- first point\n- second point\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	for _, want := range []string{"first point", "second point"} {
		if !strings.Contains(doc.Sections[0].Text, want) {
			t.Errorf("list content missing %q: %q", want, doc.Sections[0].Text)
		}
	}
}
