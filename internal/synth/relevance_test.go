package synth

import (
	"testing"

	"github.com/rcalloway/notesynth/internal/script"
)

func TestMatcher_PrefersKeywordHits(t *testing.T) {
	m := NewMatcher(script.ForScript(script.Latin), 4)
	facts := []Fact{
		{Subject: "The cafeteria", Action: "changed its menu", Details: "new vegetarian options"},
		{Subject: "Atlas budget", Action: "was approved", Details: "budget increase of $2.4M"},
	}
	got := m.Match("Budget and Funding", facts)
	if got[0].Subject != "Atlas budget" {
		t.Fatalf("expected budget fact ranked first, got %q", got[0].Subject)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("expected strictly higher score for keyword match: %f vs %f",
			got[0].Score, got[1].Score)
	}
}

func TestMatcher_StopWordsAndShortWordsIgnored(t *testing.T) {
	m := NewMatcher(script.ForScript(script.Latin), 4)
	facts := []Fact{
		{Subject: "x", Action: "mentions the and with from", Details: ""},
		{Subject: "y", Action: "discusses timeline milestones", Details: ""},
	}
	// Title words "The", "and", "for" are stop/short words; only "Timeline"
	// should count.
	got := m.Match("The Timeline and Plan for It", facts)
	if got[0].Subject != "y" {
		t.Fatalf("expected timeline fact first, got %q", got[0].Subject)
	}
}

func TestMatcher_KeepsAtMostN(t *testing.T) {
	m := NewMatcher(script.ForScript(script.Latin), 2)
	facts := make([]Fact, 6)
	for i := range facts {
		facts[i] = Fact{Subject: "s", Action: "a", Details: "d"}
	}
	if got := m.Match("Anything", facts); len(got) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(got))
	}
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher(script.ForScript(script.Latin), 4)
	facts := testFacts()
	a := m.Match("Budget Approval", facts)
	b := m.Match("Budget Approval", facts)
	for i := range a {
		if a[i].Subject != b[i].Subject {
			t.Errorf("position %d differs: %q vs %q", i, a[i].Subject, b[i].Subject)
		}
	}
}

func TestMatcher_CJKBigramMatching(t *testing.T) {
	m := NewMatcher(script.ForScript(script.CJK), 4)
	facts := []Fact{
		{Subject: "新製品", Action: "発売が決定した", Details: "価格は未定"},
		{Subject: "会議室", Action: "予約が変更された", Details: "場所は本社"},
	}
	got := m.Match("新製品の概要", facts)
	if got[0].Subject != "新製品" {
		t.Fatalf("expected product fact first, got %q", got[0].Subject)
	}
}
