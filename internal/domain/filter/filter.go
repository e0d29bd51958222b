// Package filter models the conjunctive equality filter applied to document metadata.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/pensum/internal/domain/document"
	"github.com/kailas-cloud/pensum/internal/domain/typology"
)

// Condition is a single equality clause over a metadata field.
type Condition struct {
	field string
	value string
}

// Field returns the metadata field name.
func (c Condition) Field() string { return c.field }

// Value returns the required field value.
func (c Condition) Value() string { return c.value }

// Metadata is a conjunction of at most one equality condition per field.
// The zero value is the empty filter, meaning "unfiltered".
type Metadata struct {
	semester string
	kind     typology.Kind
	category typology.Category
}

// New validates and creates a Metadata filter. Empty arguments leave the field unconstrained.
func New(semester string, kind typology.Kind, category typology.Category) (Metadata, error) {
	if semester != "" {
		n, err := strconv.Atoi(semester)
		if err != nil || n <= 0 {
			return Metadata{}, fmt.Errorf("semester must be a positive integer, got %q", semester)
		}
	}
	if kind != "" && !kind.IsFilterable() {
		return Metadata{}, fmt.Errorf("unsupported typology kind %q", kind)
	}
	if category != "" && !category.IsFilterable() {
		return Metadata{}, fmt.Errorf("unsupported typology category %q", category)
	}
	return Metadata{semester: semester, kind: kind, category: category}, nil
}

// WithSemester returns a copy constrained to semester n. A second call replaces the first.
func (m Metadata) WithSemester(n int) Metadata {
	if n > 0 {
		m.semester = strconv.Itoa(n)
	}
	return m
}

// WithKind returns a copy constrained to typology kind k.
func (m Metadata) WithKind(k typology.Kind) Metadata {
	if k.IsFilterable() {
		m.kind = k
	}
	return m
}

// WithCategory returns a copy constrained to typology category c.
func (m Metadata) WithCategory(c typology.Category) Metadata {
	if c.IsFilterable() {
		m.category = c
	}
	return m
}

// Semester returns the semester constraint ("" when unset).
func (m Metadata) Semester() string { return m.semester }

// Kind returns the typology kind constraint ("" when unset).
func (m Metadata) Kind() typology.Kind { return m.kind }

// Category returns the typology category constraint ("" when unset).
func (m Metadata) Category() typology.Category { return m.category }

// IsEmpty reports whether the filter has no conditions.
func (m Metadata) IsEmpty() bool {
	return m.semester == "" && m.kind == "" && m.category == ""
}

// Conditions returns the conditions in a fixed field order: semester, kind, category.
func (m Metadata) Conditions() []Condition {
	var out []Condition
	if m.semester != "" {
		out = append(out, Condition{field: document.FieldSemester, value: m.semester})
	}
	if m.kind != "" {
		out = append(out, Condition{field: document.FieldTypologyKind, value: string(m.kind)})
	}
	if m.category != "" {
		out = append(out, Condition{field: document.FieldTypologyCategory, value: string(m.category)})
	}
	return out
}

// Matches reports whether metadata satisfies every condition.
func (m Metadata) Matches(md document.Metadata) bool {
	for _, c := range m.Conditions() {
		if md[c.field] != c.value {
			return false
		}
	}
	return true
}

// String renders the filter for logs, e.g. "semester=3 AND typology_kind=MANDATORY".
func (m Metadata) String() string {
	conds := m.Conditions()
	if len(conds) == 0 {
		return "<none>"
	}
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.field + "=" + c.value
	}
	return strings.Join(parts, " AND ")
}
