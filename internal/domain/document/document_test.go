package document

import "testing"

func TestNew_ClonesMetadata(t *testing.T) {
	md := Metadata{FieldCode: "4100", FieldSemester: "1", FieldHasPrerequisites: "true"}
	doc := New("Subject: Calculus I", md)

	md[FieldCode] = "mutated"
	if doc.Code() != "4100" {
		t.Error("metadata mutation leaked into document")
	}

	out := doc.Metadata()
	out[FieldSemester] = "9"
	if doc.Semester() != "1" {
		t.Error("Metadata() must return a copy")
	}
	if !doc.HasPrerequisites() {
		t.Error("HasPrerequisites() = false")
	}
}

func TestNew_NilMetadata(t *testing.T) {
	doc := New("text", nil)
	if doc.Metadata() != nil {
		t.Errorf("Metadata() = %v, want nil", doc.Metadata())
	}
	if doc.Get(FieldName) != "" {
		t.Errorf("Get() = %q", doc.Get(FieldName))
	}
	if doc.HasPrerequisites() {
		t.Error("HasPrerequisites() = true")
	}
}

func TestJoin(t *testing.T) {
	docs := []Document{New("a", nil), New("b", nil), New("c", nil)}
	if got := Join(docs); got != "a\n\nb\n\nc" {
		t.Errorf("Join() = %q", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q", got)
	}
}
