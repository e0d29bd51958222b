package document

import "strings"

// Metadata field names present on every curriculum document.
const (
	FieldCode             = "code"
	FieldName             = "name"
	FieldSemester         = "semester"
	FieldCredits          = "credits"
	FieldTypology         = "typology"
	FieldTypologyKind     = "typology_kind"
	FieldTypologyCategory = "typology_category"
	FieldHasPrerequisites = "has_prerequisites"
)

// Separator joins document contents into a retrieval context.
const Separator = "\n\n"

// Metadata maps a metadata field name to its stored value.
type Metadata map[string]string

// Document is a corpus entry (immutable value object owned by the store).
type Document struct {
	content  string
	metadata Metadata
}

// New creates a Document. The metadata map is copied.
func New(content string, metadata Metadata) Document {
	return Document{content: content, metadata: cloneMetadata(metadata)}
}

// Content returns the document text.
func (d Document) Content() string { return d.content }

// Metadata returns a copy of the metadata fields.
func (d Document) Metadata() Metadata { return cloneMetadata(d.metadata) }

// Get returns a single metadata value ("" when absent).
func (d Document) Get(field string) string { return d.metadata[field] }

// Code returns the course code.
func (d Document) Code() string { return d.metadata[FieldCode] }

// Semester returns the semester digit string.
func (d Document) Semester() string { return d.metadata[FieldSemester] }

// HasPrerequisites reports whether the course declares prerequisites.
func (d Document) HasPrerequisites() bool { return d.metadata[FieldHasPrerequisites] == "true" }

// Join concatenates document contents in order, separated by a blank line.
func Join(docs []Document) string {
	parts := make([]string, len(docs))
	for i := range docs {
		parts[i] = docs[i].content
	}
	return strings.Join(parts, Separator)
}

func cloneMetadata(m Metadata) Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
