// Package intent enumerates the mutually exclusive question categories.
package intent

// Intent selects the processing path of a question. It is assigned once and never revised.
type Intent string

// Intent constants, listed in classification priority order.
const (
	Identity    Intent = "IDENTITY"
	Social      Intent = "SOCIAL"
	Quantity    Intent = "QUANTITY"
	FieldLookup Intent = "FIELD_LOOKUP"
	Listing     Intent = "LISTING"
	General     Intent = "GENERAL"
)

// All returns every intent in classification priority order.
func All() []Intent {
	return []Intent{Identity, Social, Quantity, FieldLookup, Listing, General}
}

// IsValid checks if the intent is one of the supported values.
func (i Intent) IsValid() bool {
	for _, v := range All() {
		if i == v {
			return true
		}
	}
	return false
}

// NeedsRetrieval reports whether the intent's path reads the document store.
func (i Intent) NeedsRetrieval() bool {
	return i == FieldLookup || i == Listing || i == General
}

func (i Intent) String() string { return string(i) }
