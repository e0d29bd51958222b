// Package course holds the structured record parsed out of a curriculum document.
package course

// NoPrerequisites is the sentinel stored when a record declares no prerequisites.
const NoPrerequisites = "None"

// Attribute names a single readable field of a Record.
type Attribute string

// Attribute constants.
const (
	Code          Attribute = "code"
	Credits       Attribute = "credits"
	Semester      Attribute = "semester"
	Typology      Attribute = "typology"
	Prerequisites Attribute = "prerequisites"
)

// Record is a course parsed from document text. It is derived per call and never cached.
type Record struct {
	Name          string
	Code          string
	Semester      string
	Credits       string
	Typology      string
	Prerequisites string
}

// HasPrerequisites reports whether the record lists any prerequisite.
func (r Record) HasPrerequisites() bool {
	return r.Prerequisites != "" && r.Prerequisites != NoPrerequisites
}

// Get reads one attribute. ok is false for unknown attributes.
func (r Record) Get(a Attribute) (value string, ok bool) {
	switch a {
	case Code:
		return r.Code, true
	case Credits:
		return r.Credits, true
	case Semester:
		return r.Semester, true
	case Typology:
		return r.Typology, true
	case Prerequisites:
		return r.Prerequisites, true
	default:
		return "", false
	}
}
