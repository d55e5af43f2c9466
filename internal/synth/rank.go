package synth

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// RankWeights are the heuristic scoring constants. They have no learned
// justification, so they stay configurable rather than hard-coded.
type RankWeights struct {
	DetailLength  float64 // per rune of the details field
	DigitBonus    float64 // details contains a digit
	ProperNoun    float64 // subject contains a capitalized word
	SubjectLength float64 // per rune of the subject
}

func DefaultRankWeights() RankWeights {
	return RankWeights{
		DetailLength:  0.1,
		DigitBonus:    5,
		ProperNoun:    3,
		SubjectLength: 0.05,
	}
}

// Ranker merges near-duplicate facts and scores the survivors by
// informativeness. Pure and reproducible: identical input always yields the
// same output order.
type Ranker struct {
	weights    RankWeights
	similarity float64 // subjects at or above this ratio are duplicates
	keep       int
}

func NewRanker(weights RankWeights, similarity float64, keep int) *Ranker {
	if similarity <= 0 || similarity > 1 {
		similarity = 0.7
	}
	if keep <= 0 {
		keep = 10
	}
	return &Ranker{weights: weights, similarity: similarity, keep: keep}
}

// Rank deduplicates, scores, and returns at most keep facts in descending
// score order. First-seen wins among duplicates; ties keep input order.
func (r *Ranker) Rank(facts []Fact) []Fact {
	unique := r.Dedupe(facts)

	scored := make([]Fact, len(unique))
	for i, f := range unique {
		f.Score = r.score(f)
		scored[i] = f
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.keep {
		scored = scored[:r.keep]
	}
	return scored
}

// Dedupe drops every fact whose subject is within the similarity threshold of
// an already-accepted fact. Idempotent: running it on its own output is a
// no-op.
func (r *Ranker) Dedupe(facts []Fact) []Fact {
	var unique []Fact
	for _, f := range facts {
		dup := false
		for _, kept := range unique {
			if subjectSimilarity(f.Subject, kept.Subject) >= r.similarity {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, f)
		}
	}
	return unique
}

var capWordRe = regexp.MustCompile(`\p{Lu}\p{Ll}+`)

func (r *Ranker) score(f Fact) float64 {
	score := r.weights.DetailLength * float64(len([]rune(f.Details)))
	score += r.weights.SubjectLength * float64(len([]rune(f.Subject)))
	if containsDigit(f.Details) {
		score += r.weights.DigitBonus
	}
	if capWordRe.MatchString(f.Subject) {
		score += r.weights.ProperNoun
	}
	return score
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// subjectSimilarity is a normalized edit-distance ratio over the lowercased
// subjects: 1 means identical, 0 means nothing in common.
func subjectSimilarity(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	if longer == 0 {
		return 1
	}
	dist := levenshtein(ra, rb)
	return 1 - float64(dist)/float64(longer)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
