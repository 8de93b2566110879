package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocument(t *testing.T) {
	d := NewDocument("doc1", "src1", "hello world")
	assert.Equal(t, "doc1", d.ID)
	assert.Equal(t, "src1", d.SourceID)
	assert.Equal(t, "hello world", d.Text)
	assert.Empty(t, d.Metadata)
}

func TestWithMetadata(t *testing.T) {
	d := NewDocument("doc1", "src1", "text").
		WithMetadata("title", "Example").
		WithMetadata("page", 3)

	assert.Equal(t, "Example", d.Metadata["title"])
	assert.Equal(t, 3, d.Metadata["page"])
}

func TestWithMetadataMap(t *testing.T) {
	d := NewDocument("doc1", "src1", "text").
		WithMetadata("title", "Example").
		WithMetadataMap(Metadata{"author": "alice", "page": 1})

	assert.Equal(t, "Example", d.Metadata["title"])
	assert.Equal(t, "alice", d.Metadata["author"])
	assert.Equal(t, 1, d.Metadata["page"])
}

func TestTagsRoundTrip(t *testing.T) {
	d := NewDocument("doc1", "src1", "text").WithTags("faq", "billing")

	assert.ElementsMatch(t, []string{"faq", "billing"}, d.Tags())
}

func TestWithTagAppends(t *testing.T) {
	d := NewDocument("doc1", "src1", "text").
		WithTag("faq").
		WithTag("billing")

	assert.ElementsMatch(t, []string{"faq", "billing"}, d.Tags())
}

func TestTagsEmptyWhenUnset(t *testing.T) {
	d := NewDocument("doc1", "src1", "text")
	assert.Empty(t, d.Tags())
}

func TestNewDocumentWithGeneratedIDHasDocPrefix(t *testing.T) {
	d1 := NewDocumentWithGeneratedID("src1", "text")
	d2 := NewDocumentWithGeneratedID("src1", "text")

	assert.True(t, strings.HasPrefix(d1.ID, "doc_"))
	assert.NotEqual(t, d1.ID, d2.ID)
}
