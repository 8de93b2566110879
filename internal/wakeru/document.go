package wakeru

import "github.com/ternarybob/wakeru/internal/model"

// Document, Metadata, and SearchResult re-export internal/model's
// types, the package internal/indexer and internal/searcher are
// actually built against.
type (
	Document     = model.Document
	Metadata     = model.Metadata
	SearchResult = model.SearchResult
)

// TagsKey re-exports model.TagsKey.
const TagsKey = model.TagsKey

// NewDocument re-exports model.NewDocument.
func NewDocument(id, sourceID, text string) *Document { return model.NewDocument(id, sourceID, text) }

// NewDocumentWithGeneratedID re-exports model.NewDocumentWithGeneratedID.
func NewDocumentWithGeneratedID(sourceID, text string) *Document {
	return model.NewDocumentWithGeneratedID(sourceID, text)
}
