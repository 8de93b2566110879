// Package model defines the Document, Metadata, and SearchResult
// types shared across the indexer, searcher, and service façade
// packages. It is a leaf package deliberately kept separate from
// internal/wakeru so internal/indexer and internal/searcher can
// depend on these types without importing the façade package that
// depends on them.
package model

import "github.com/ternarybob/wakeru/internal/common"

// TagsKey is the reserved metadata key under which Document's tag
// helpers store a JSON string array. Tags come back with the rest of a
// search result's metadata; the index stores metadata as one unindexed
// JSON string, so a query such as metadata.tags:value matches nothing.
const TagsKey = "tags"

// Metadata is an arbitrary key/value map indexed alongside a
// Document's text. It round-trips through JSON, matching the shape a
// vector-store payload or jsonb column would use.
type Metadata map[string]interface{}

// Document is a chunk of RAG-pipeline content submitted for indexing.
type Document struct {
	ID       string   `json:"id"`
	SourceID string   `json:"source_id"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// NewDocument constructs a Document with empty metadata.
func NewDocument(id, sourceID, text string) *Document {
	return &Document{ID: id, SourceID: sourceID, Text: text, Metadata: Metadata{}}
}

// NewDocumentWithGeneratedID constructs a Document whose ID is
// generated rather than caller-supplied, for ingestion pipelines that
// chunk a source document into many pieces without a natural
// per-chunk identifier of their own.
func NewDocumentWithGeneratedID(sourceID, text string) *Document {
	return NewDocument(common.NewDocumentID(), sourceID, text)
}

// WithMetadata sets a single metadata key and returns the receiver for
// chaining.
func (d *Document) WithMetadata(key string, value interface{}) *Document {
	if d.Metadata == nil {
		d.Metadata = Metadata{}
	}
	d.Metadata[key] = value
	return d
}

// WithMetadataMap merges a metadata map into the document and returns
// the receiver for chaining.
func (d *Document) WithMetadataMap(metadata Metadata) *Document {
	if d.Metadata == nil {
		d.Metadata = Metadata{}
	}
	for k, v := range metadata {
		d.Metadata[k] = v
	}
	return d
}

// WithTag appends a tag to metadata[TagsKey], overwriting the key if
// it previously held a non-array value.
func (d *Document) WithTag(tag string) *Document {
	if d.Metadata == nil {
		d.Metadata = Metadata{}
	}
	existing, ok := d.Metadata[TagsKey].([]interface{})
	if !ok {
		existing = []interface{}{}
	}
	d.Metadata[TagsKey] = append(existing, tag)
	return d
}

// WithTags appends multiple tags; equivalent to calling WithTag
// repeatedly.
func (d *Document) WithTags(tags ...string) *Document {
	for _, t := range tags {
		d.WithTag(t)
	}
	return d
}

// Tags returns the string tags stored at metadata[TagsKey], or nil if
// the key is absent or not a string array.
func (d *Document) Tags() []string {
	raw, ok := d.Metadata[TagsKey].([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// SearchResult is a single BM25-ranked hit returned by the Search
// Engine.
type SearchResult struct {
	DocID    string   `json:"doc_id"`
	SourceID string   `json:"source_id"`
	Score    float64  `json:"score"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitempty"`
}
