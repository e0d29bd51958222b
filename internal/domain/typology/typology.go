// Package typology holds the two curriculum classification axes.
package typology

// Kind is the mandatory/elective axis of a course typology.
type Kind string

// Kind constants. Other is stored on documents but never used as a filter value.
const (
	Mandatory Kind = "MANDATORY"
	Elective  Kind = "ELECTIVE"
	OtherKind Kind = "OTHER"
)

// IsFilterable reports whether k may appear in a metadata filter.
func (k Kind) IsFilterable() bool {
	return k == Mandatory || k == Elective
}

// Label returns the lowercase adjective used in answers.
func (k Kind) Label() string {
	switch k {
	case Mandatory:
		return "mandatory"
	case Elective:
		return "elective"
	default:
		return ""
	}
}

// Category is the foundational/disciplinary/language/capstone axis of a course typology.
type Category string

// Category constants.
const (
	Foundational    Category = "FOUNDATIONAL"
	Disciplinary    Category = "DISCIPLINARY"
	ForeignLanguage Category = "FOREIGN_LANGUAGE"
	Capstone        Category = "CAPSTONE"
	OtherCategory   Category = "OTHER"
)

// IsFilterable reports whether c may appear in a metadata filter.
func (c Category) IsFilterable() bool {
	switch c {
	case Foundational, Disciplinary, ForeignLanguage, Capstone:
		return true
	default:
		return false
	}
}

// Label returns the lowercase adjective used in answers.
func (c Category) Label() string {
	switch c {
	case Foundational:
		return "foundational"
	case Disciplinary:
		return "disciplinary"
	case ForeignLanguage:
		return "foreign language"
	case Capstone:
		return "capstone"
	default:
		return ""
	}
}
