package synth

import (
	"regexp"
	"strings"
)

// Structured-text parsing of model output. The response schema is treated as
// untrusted text: blocks missing any field are counted and discarded.

var (
	factLabelRe = regexp.MustCompile(`(?mi)^\s*fact\s*\d*\s*[::]\s*$`)
	subjectRe   = regexp.MustCompile(`(?mi)^\s*subject\s*[::]\s*(.+?)\s*$`)
	actionRe    = regexp.MustCompile(`(?mi)^\s*action\s*[::]\s*(.+?)\s*$`)
	detailsRe   = regexp.MustCompile(`(?mi)^\s*details\s*[::]\s*(.+?)\s*$`)
)

// ParseFacts splits a model response on the fact-label pattern and extracts
// the three required fields from each block. The segment before the first
// label is preamble and ignored. Returns the parsed facts and the number of
// blocks dropped for missing fields.
func ParseFacts(response string) ([]Fact, int) {
	blocks := factLabelRe.Split(response, -1)
	if len(blocks) <= 1 {
		return nil, 0
	}
	blocks = blocks[1:]

	var facts []Fact
	dropped := 0
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		subject := firstMatch(subjectRe, block)
		action := firstMatch(actionRe, block)
		details := firstMatch(detailsRe, block)
		if subject == "" || action == "" || details == "" {
			dropped++
			continue
		}
		facts = append(facts, Fact{
			Subject: subject,
			Action:  action,
			Details: details,
		})
	}
	return facts, dropped
}

func firstMatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
