package retrieval

import (
	"fmt"

	"github.com/kailas-cloud/pensum/internal/domain/filter"
	"github.com/kailas-cloud/pensum/internal/domain/intent"
	"github.com/kailas-cloud/pensum/internal/domain/question"
)

// Sizes are the retrieval sizes per question shape.
type Sizes struct {
	FieldLookup        int // field lookup with a named subject
	FieldLookupUnknown int // field lookup without a recognizable subject
	Default            int
	Exhaustive         int // must cover the whole corpus
}

// DefaultSizes returns the sizes used when none are configured.
func DefaultSizes() Sizes {
	return Sizes{FieldLookup: 2, FieldLookupUnknown: 3, Default: 5, Exhaustive: 60}
}

// Validate checks that every size is positive.
func (s Sizes) Validate() error {
	if s.FieldLookup <= 0 || s.FieldLookupUnknown <= 0 || s.Default <= 0 || s.Exhaustive <= 0 {
		return fmt.Errorf("retrieval sizes must be positive: %+v", s)
	}
	return nil
}

// Plan is the retrieval decision for one question.
type Plan struct {
	Filter     filter.Metadata
	K          int
	Exhaustive bool // keep every filtered match regardless of K
}

// BuildFilter derives the metadata filter of a question. Each keyword family
// contributes at most one condition; an empty filter means unfiltered.
func BuildFilter(q string) filter.Metadata {
	return BuildFilterText(question.Parse(q))
}

// BuildFilterText is BuildFilter over an already parsed question.
func BuildFilterText(t question.Text) filter.Metadata {
	var f filter.Metadata
	if k, ok := t.Kind(); ok {
		f = f.WithKind(k)
	}
	if c, ok := t.Category(); ok {
		f = f.WithCategory(c)
	}
	if n, ok := t.Semester(); ok {
		f = f.WithSemester(n)
	}
	return f
}

// NewPlan sizes the retrieval for a classified question.
func NewPlan(t question.Text, in intent.Intent, sizes Sizes) Plan {
	f := BuildFilterText(t)
	p := Plan{Filter: f, Exhaustive: in == intent.Listing}

	switch {
	case in == intent.FieldLookup && t.Subject() != "":
		p.K = sizes.FieldLookup
	case in == intent.FieldLookup:
		p.K = sizes.FieldLookupUnknown
	case in == intent.Listing, !f.IsEmpty():
		p.K = sizes.Exhaustive
	default:
		p.K = sizes.Default
	}
	return p
}
