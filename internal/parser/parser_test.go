package parser

import "testing"

func TestForFile(t *testing.T) {
	for _, filename := range []string{
		"notes.txt", "plan.MD", "data.csv", "page.html",
		"page.htm", "paper.pdf", "memo.docx",
	} {
		p, err := ForFile(filename)
		if err != nil {
			t.Errorf("ForFile(%q) unexpected error: %v", filename, err)
			continue
		}
		if p == nil {
			t.Errorf("ForFile(%q) returned nil parser", filename)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("image.png"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := ForFile("noextension"); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("REPORT.PDF") {
		t.Error("extension check should be case-insensitive")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("zip is not a supported reference format")
	}
}
