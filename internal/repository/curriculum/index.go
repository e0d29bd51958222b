package curriculum

import (
	"github.com/kailas-cloud/pensum/internal/db"
	"github.com/kailas-cloud/pensum/internal/domain"
	"github.com/kailas-cloud/pensum/internal/domain/document"
)

const (
	fieldContent = "content"
	fieldVector  = "vector"
)

// KeyPrefix is the default hash key prefix of course documents, e.g. "pensum:course:4100123".
const KeyPrefix = domain.KeyPrefix + "course:"

// tagFields are the metadata fields the index can filter on.
var tagFields = []string{
	document.FieldCode,
	document.FieldSemester,
	document.FieldTypologyKind,
	document.FieldTypologyCategory,
	document.FieldHasPrerequisites,
}

// returnFields keeps the vector blob out of search replies.
var returnFields = []string{
	fieldContent,
	document.FieldCode,
	document.FieldName,
	document.FieldSemester,
	document.FieldCredits,
	document.FieldTypology,
	document.FieldTypologyKind,
	document.FieldTypologyCategory,
	document.FieldHasPrerequisites,
}

func buildIndex(cfg Config, hnsw HNSWConfig) (*db.IndexDefinition, error) {
	return db.NewIndex(cfg.IndexName).
		Prefix(cfg.KeyPrefix).
		Tag(tagFields...).
		Numeric(document.FieldCredits).
		VectorHNSW(fieldVector, cfg.VectorDim, cfg.Distance, hnsw.M, hnsw.EFConstruct).
		Build()
}
