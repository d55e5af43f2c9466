package synth

import "testing"

func testFacts() []Fact {
	return []Fact{
		{Subject: "Acme Corporation", Action: "approved the launch", Details: "budget of $2.4M set on March 3"},
		{Subject: "acme corporation", Action: "duplicate of the first", Details: "slightly reworded"},
		{Subject: "The review board", Action: "requested an audit", Details: "due within ninety days"},
		{Subject: "Atlas", Action: "enters beta", Details: "500 pilot customers in 12 regions"},
	}
}

func TestRanker_DedupeFirstSeenWins(t *testing.T) {
	r := NewRanker(DefaultRankWeights(), 0.7, 10)
	unique := r.Dedupe(testFacts())

	if len(unique) != 3 {
		t.Fatalf("expected 3 unique facts, got %d", len(unique))
	}
	if unique[0].Action != "approved the launch" {
		t.Errorf("expected first-seen instance to survive, got %q", unique[0].Action)
	}
}

func TestRanker_DedupeIsIdempotent(t *testing.T) {
	r := NewRanker(DefaultRankWeights(), 0.7, 10)
	once := r.Dedupe(testFacts())
	twice := r.Dedupe(once)

	if len(once) != len(twice) {
		t.Fatalf("dedupe not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("fact %d changed on second pass", i)
		}
	}
}

func TestRanker_DissimilarSubjectsAllSurvive(t *testing.T) {
	r := NewRanker(DefaultRankWeights(), 0.7, 10)
	facts := []Fact{
		{Subject: "Alpha", Action: "a", Details: "d"},
		{Subject: "Completely different", Action: "b", Details: "d"},
	}
	if got := r.Dedupe(facts); len(got) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(got))
	}
}

func TestRanker_RankIsDeterministic(t *testing.T) {
	r := NewRanker(DefaultRankWeights(), 0.7, 10)
	a := r.Rank(testFacts())
	b := r.Rank(testFacts())

	if len(a) != len(b) {
		t.Fatalf("rank lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Subject != b[i].Subject {
			t.Errorf("position %d differs: %q vs %q", i, a[i].Subject, b[i].Subject)
		}
	}
}

func TestRanker_DescendingScoreOrder(t *testing.T) {
	r := NewRanker(DefaultRankWeights(), 0.7, 10)
	ranked := r.Rank(testFacts())

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
}

func TestRanker_DigitAndProperNounBonuses(t *testing.T) {
	// Same field lengths; only the bonuses differ.
	weights := RankWeights{DetailLength: 0, DigitBonus: 5, ProperNoun: 3, SubjectLength: 0}
	r := NewRanker(weights, 0.7, 10)

	facts := []Fact{
		{Subject: "lowercase subject", Action: "x", Details: "no numbers here"},
		{Subject: "Titlecase Subject", Action: "x", Details: "includes 42 units"},
	}
	ranked := r.Rank(facts)
	if ranked[0].Subject != "Titlecase Subject" {
		t.Fatalf("expected bonused fact first, got %q", ranked[0].Subject)
	}
	if ranked[0].Score != 8 {
		t.Errorf("expected score 8 (digit 5 + proper noun 3), got %f", ranked[0].Score)
	}
	if ranked[1].Score != 0 {
		t.Errorf("expected score 0 for plain fact, got %f", ranked[1].Score)
	}
}

func TestRanker_KeepsAtMostN(t *testing.T) {
	r := NewRanker(DefaultRankWeights(), 0.7, 2)
	ranked := r.Rank(testFacts())
	if len(ranked) != 2 {
		t.Fatalf("expected 2 facts kept, got %d", len(ranked))
	}
}

func TestSubjectSimilarity(t *testing.T) {
	if got := subjectSimilarity("Acme Corp", "acme corp"); got != 1 {
		t.Errorf("case difference should be identical, got %f", got)
	}
	if got := subjectSimilarity("abcd", "wxyz"); got != 0 {
		t.Errorf("disjoint strings should score 0, got %f", got)
	}
	got := subjectSimilarity("kitten", "sitting")
	want := 1 - 3.0/7.0
	if got < want-0.0001 || got > want+0.0001 {
		t.Errorf("expected %f, got %f", want, got)
	}
}
