package curriculum

import (
	"github.com/kailas-cloud/pensum/internal/db"
	"github.com/kailas-cloud/pensum/internal/domain/document"
)

// toDocuments converts hash entries to documents, keeping the store's order.
func toDocuments(sr *db.SearchResult) []document.Document {
	if sr == nil || len(sr.Entries) == 0 {
		return []document.Document{}
	}
	docs := make([]document.Document, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		docs = append(docs, entryToDocument(e))
	}
	return docs
}

func entryToDocument(e db.SearchEntry) document.Document {
	md := make(document.Metadata, len(e.Fields))
	for k, v := range e.Fields {
		if k == fieldContent || k == fieldVector {
			continue
		}
		md[k] = v
	}
	return document.New(e.Fields[fieldContent], md)
}
