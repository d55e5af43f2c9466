package synth

import (
	"sort"
	"strings"

	"github.com/rcalloway/notesynth/internal/script"
)

// Matcher selects the facts most relevant to one section heading by counting
// weighted keyword occurrences. Deterministic for identical input.
type Matcher struct {
	profile     script.Profile
	detailBonus float64 // per rune of the details field
	keep        int
}

func NewMatcher(profile script.Profile, keep int) *Matcher {
	if keep <= 0 {
		keep = 4
	}
	return &Matcher{profile: profile, detailBonus: 0.01, keep: keep}
}

// Match scores every fact against the section title's significant words and
// returns the top facts in descending relevance order. Each keyword hit is
// weighted by keyword length; longer matches carry more signal.
func (m *Matcher) Match(sectionTitle string, facts []Fact) []Fact {
	keywords := m.profile.Keywords(sectionTitle)

	scored := make([]Fact, len(facts))
	for i, f := range facts {
		haystack := f.flat()
		var score float64
		for _, kw := range keywords {
			count := strings.Count(haystack, strings.ToLower(kw))
			score += float64(count) * float64(len([]rune(kw)))
		}
		score += m.detailBonus * float64(len([]rune(f.Details)))
		f.Score = score
		scored[i] = f
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > m.keep {
		scored = scored[:m.keep]
	}
	return scored
}
