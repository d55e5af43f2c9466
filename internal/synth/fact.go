package synth

import "strings"

// Fact is one atomic claim extracted from reference text. Facts carry no
// identity beyond their content; deduplication works on subject similarity.
type Fact struct {
	Subject string  `json:"subject"`
	Action  string  `json:"action"`
	Details string  `json:"details"`
	Score   float64 `json:"score,omitempty"`
}

// flat returns the searchable text of the fact for relevance matching.
func (f Fact) flat() string {
	return strings.ToLower(f.Subject + " " + f.Action + " " + f.Details)
}

// summary renders the fact as a one-line bullet for prompts.
func (f Fact) summary() string {
	s := f.Subject + " " + f.Action
	if f.Details != "" {
		s += " (" + f.Details + ")"
	}
	return s
}
