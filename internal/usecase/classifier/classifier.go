// Package classifier assigns exactly one intent to a question through an ordered
// cascade of pure predicates. The first predicate that matches wins.
package classifier

import (
	"github.com/kailas-cloud/pensum/internal/domain/course"
	"github.com/kailas-cloud/pensum/internal/domain/intent"
	"github.com/kailas-cloud/pensum/internal/domain/question"
)

// Rule pairs an intent with the predicate that selects it.
type Rule struct {
	Intent intent.Intent
	Match  func(question.Text) bool
}

// Cascade returns the rules in priority order. GENERAL has no rule: it is the default.
func Cascade() []Rule {
	return []Rule{
		{intent.Identity, IsIdentity},
		{intent.Social, IsSocial},
		{intent.Quantity, IsQuantity},
		{intent.FieldLookup, IsFieldLookup},
		{intent.Listing, IsListing},
	}
}

// Classify parses q and runs the cascade.
func Classify(q string) intent.Intent {
	return ClassifyText(question.Parse(q))
}

// ClassifyText runs the cascade over an already parsed question.
func ClassifyText(t question.Text) intent.Intent {
	for _, r := range Cascade() {
		if r.Match(t) {
			return r.Intent
		}
	}
	return intent.General
}

// IsIdentity matches questions about the assistant itself.
func IsIdentity(t question.Text) bool {
	return t.HasAny(identityPhrases)
}

// IsSocial matches greetings and small talk, and any question without an academic
// keyword that does not ask about a named subject either.
func IsSocial(t question.Text) bool {
	if t.Equals(socialPhrases) {
		return true
	}
	if t.HasAny(academicKeywords) {
		return false
	}
	return !(t.HasAny(subjectFrames) && t.Subject() != "")
}

// IsQuantity matches count questions about the curriculum as a whole. Counting an
// attribute ("how many credits") or counting within a semester is not a QUANTITY question.
func IsQuantity(t question.Text) bool {
	if !t.HasAny(quantityKeywords) {
		return false
	}
	if _, ok := t.Attribute(); ok {
		return false
	}
	if _, ok := t.Semester(); ok {
		return false
	}
	return true
}

// IsFieldLookup matches questions asking for one attribute of a single course.
func IsFieldLookup(t question.Text) bool {
	attr, ok := t.Attribute()
	if !ok {
		return false
	}
	if attr == course.Semester && t.HasAny(semesterCountPhrases) {
		return false
	}
	return !IsListing(t)
}

// IsListing matches requests to enumerate courses, with or without a semester scope.
func IsListing(t question.Text) bool {
	if t.HasAny(listingKeywords) {
		return true
	}
	_, scoped := t.Semester()
	return scoped && t.HasAny(courseNouns)
}
