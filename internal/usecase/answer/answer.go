package answer

import (
	"regexp"

	"github.com/kailas-cloud/pensum/internal/domain/intent"
	"github.com/kailas-cloud/pensum/internal/metrics"
)

// Answer is the outcome of synthesis before delivery: either precomputed text
// or a pending generation. Both delivery modes render the same value.
type Answer struct {
	intent    intent.Intent
	text      string
	generated bool
	system    string
	user      string
}

// Fixed returns a precomputed answer.
func Fixed(in intent.Intent, text string) Answer {
	return Answer{intent: in, text: text}
}

// Pending returns an answer that still has to be generated from the given prompts.
func Pending(in intent.Intent, system, user string) Answer {
	return Answer{intent: in, generated: true, system: system, user: user}
}

// Intent returns the intent the answer was synthesized for.
func (a Answer) Intent() intent.Intent { return a.intent }

// IsGenerated reports whether rendering calls the generative service.
func (a Answer) IsGenerated() bool { return a.generated }

// Text returns the precomputed text ("" for pending answers).
func (a Answer) Text() string { return a.text }

// Prompt returns the system and user prompts of a pending answer.
func (a Answer) Prompt() (system, user string) { return a.system, a.user }

// Path returns the metrics label of the producing path.
func (a Answer) Path() string {
	if a.generated {
		return metrics.PathGenerative
	}
	return metrics.PathDeterministic
}

// word is a run of non-space bytes with the whitespace around it. Only the first
// match can carry leading whitespace, since each match consumes its trailing run.
var word = regexp.MustCompile(`\s*\S+\s*`)

// Words splits s into word fragments that keep their trailing whitespace.
// Concatenating the fragments yields s exactly.
func Words(s string) []string {
	if s == "" {
		return nil
	}
	out := word.FindAllString(s, -1)
	if len(out) == 0 {
		return []string{s}
	}
	return out
}
