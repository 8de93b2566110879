package searcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/wakeru/internal/common"
	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
	"github.com/ternarybob/wakeru/internal/indexer"
	"github.com/ternarybob/wakeru/internal/model"
)

func openEnglishManager(t *testing.T) *indexer.Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "en")
	mgr, err := indexer.OpenOrCreate(path, common.En, nil)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestSearchRoundTripsComplexMetadata(t *testing.T) {
	mgr := openEnglishManager(t)

	doc := model.NewDocument("doc1", "src1", "a document about tokyo geography").
		WithTags("category:geo").
		WithMetadata("object", map[string]interface{}{"nested": "value"}).
		WithMetadata("deleted_at", nil)

	_, err := mgr.AddDocuments([]*model.Document{doc})
	require.NoError(t, err)

	engine := New(mgr)
	results, werr := engine.Search("tokyo", 10)
	require.NoError(t, werr)
	require.Len(t, results, 1)

	assert.Equal(t, []interface{}{"category:geo"}, results[0].Metadata["tags"])
	assert.Equal(t, map[string]interface{}{"nested": "value"}, results[0].Metadata["object"])

	deletedAt, present := results[0].Metadata["deleted_at"]
	assert.True(t, present)
	assert.Nil(t, deletedAt)
}

func TestSearchReturnsInvalidIndexWhenIDMissing(t *testing.T) {
	mgr := openEnglishManager(t)

	// Bypass AddDocuments/toIndexDocument to simulate a malformed index
	// entry missing its required stored "id" field.
	raw := map[string]interface{}{
		"_type":             "chunk",
		indexer.FieldSourceID: "src1",
		indexer.FieldText:    "hello world",
	}
	require.NoError(t, mgr.Index().Index("broken-doc", raw))

	engine := New(mgr)
	_, werr := engine.Search("hello", 10)
	require.Error(t, werr)

	wakeruErr, ok := werr.(*wakeruerrors.WakeruError)
	require.True(t, ok)
	require.NotNil(t, wakeruErr.Searcher)
	assert.Equal(t, wakeruerrors.SearcherInvalidIndex, wakeruErr.Searcher.Kind)
	assert.Equal(t, indexer.FieldID, wakeruErr.Searcher.Field)
}
