package script

import (
	"strings"
	"unicode"
)

// Script identifies the writing system a piece of text is predominantly in.
type Script string

const (
	Latin Script = "latin"
	CJK   Script = "cjk"
)

// Detect classifies text by counting letters per script class. Ties and
// letterless input resolve to Latin.
func Detect(text string) Script {
	var latin, cjk int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r), unicode.Is(unicode.Hiragana, r),
			unicode.Is(unicode.Katakana, r), unicode.Is(unicode.Hangul, r):
			cjk++
		case unicode.IsLetter(r):
			latin++
		}
	}
	if cjk > latin {
		return CJK
	}
	return Latin
}

// Profile bundles the per-script configuration the pipeline needs: how to
// tokenize headings, which words carry no signal, and which instruction
// keywords indicate report intent. Loaded once at startup and injected.
type Profile struct {
	Script           Script
	MinKeywordLen    int
	StopWords        map[string]struct{}
	IntentKeywords   []string
	FallbackSections []string
	TitleSuffix      string
	GenericTitle     string
	EmptySectionText string
}

// ForScript returns the built-in profile for a script.
func ForScript(s Script) Profile {
	if s == CJK {
		return cjkProfile()
	}
	return latinProfile()
}

// HasIntent reports whether the instruction contains any report/draft keyword.
func (p Profile) HasIntent(instruction string) bool {
	lower := strings.ToLower(instruction)
	for _, kw := range p.IntentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Matches reports whether text contains at least one letter of the profile's
// script. Used to reject model output in the wrong writing system.
func (p Profile) Matches(text string) bool {
	for _, r := range text {
		switch p.Script {
		case CJK:
			if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
				unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
				return true
			}
		default:
			if unicode.IsLetter(r) && r < 0x2E80 {
				return true
			}
		}
	}
	return false
}

// Keywords extracts the significant words of a heading for relevance scoring.
// Space-delimited scripts split on fields; CJK text is cut into overlapping
// rune bigrams since there are no word boundaries to split on.
func (p Profile) Keywords(text string) []string {
	if p.Script == CJK {
		return p.cjkKeywords(text)
	}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len([]rune(w)) < p.MinKeywordLen {
			continue
		}
		if _, stop := p.StopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (p Profile) cjkKeywords(text string) []string {
	var runs [][]rune
	var cur []rune
	for _, r := range text {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			cur = append(cur, r)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(w string) {
		if len([]rune(w)) < p.MinKeywordLen {
			return
		}
		if _, stop := p.StopWords[w]; stop {
			return
		}
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, run := range runs {
		if len(run) <= 2 {
			add(string(run))
			continue
		}
		for i := 0; i+2 <= len(run); i++ {
			add(string(run[i : i+2]))
		}
	}
	return out
}
