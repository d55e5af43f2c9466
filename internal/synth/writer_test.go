package synth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rcalloway/notesynth/internal/script"
)

func TestWriter_EmptyFactsReturnsPlaceholderWithoutGenerating(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) {
		t.Fatal("generator must not be called with zero facts")
		return "", nil
	}}
	profile := script.ForScript(script.Latin)
	w := NewWriter(gen, profile)

	content, err := w.Write(context.Background(), "Overview", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != profile.EmptySectionText {
		t.Errorf("expected fixed placeholder, got %q", content)
	}
	if gen.callCount() != 0 {
		t.Errorf("expected 0 generation calls, got %d", gen.callCount())
	}
}

func TestWriter_StripsLabelArtifacts(t *testing.T) {
	gen := &fakeGen{respond: func(string) (string, error) {
		return "Content: The project was approved with a budget.", nil
	}}
	w := NewWriter(gen, script.ForScript(script.Latin))

	content, err := w.Write(context.Background(), "Overview", testFacts()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "The project was approved with a budget." {
		t.Errorf("label artifact not stripped: %q", content)
	}
}

func TestWriter_PromptCarriesAtMostThreeFacts(t *testing.T) {
	var prompt string
	gen := &fakeGen{respond: func(p string) (string, error) {
		prompt = p
		return "ok", nil
	}}
	w := NewWriter(gen, script.ForScript(script.Latin))

	facts := []Fact{
		{Subject: "first", Action: "a", Details: "d"},
		{Subject: "second", Action: "a", Details: "d"},
		{Subject: "third", Action: "a", Details: "d"},
		{Subject: "fourth", Action: "a", Details: "d"},
	}
	if _, err := w.Write(context.Background(), "Overview", facts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"first", "second", "third"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
	if strings.Contains(prompt, "fourth") {
		t.Error("prompt should carry at most 3 facts")
	}
}

func TestWriter_PropagatesGeneratorError(t *testing.T) {
	genErr := errors.New("service down")
	gen := &fakeGen{respond: func(string) (string, error) {
		return "", genErr
	}}
	w := NewWriter(gen, script.ForScript(script.Latin))

	if _, err := w.Write(context.Background(), "Overview", testFacts()[:1]); !errors.Is(err, genErr) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}
