package indexer

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/wakeru/internal/common"
	"github.com/ternarybob/wakeru/internal/dictionary"
	"github.com/ternarybob/wakeru/internal/model"
	"github.com/ternarybob/wakeru/internal/tokenizer"
)

func newTestKagomeTokenizer(t *testing.T) *tokenizer.JapaneseTokenizer {
	t.Helper()
	d, err := dictionary.WithCacheDir(dictionary.Ipadic, t.TempDir()).Load()
	require.Nil(t, err)
	jt, jerr := tokenizer.NewJapaneseTokenizer(d.Dict())
	require.NoError(t, jerr)
	return jt
}

func openEnglishManager(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "en")
	mgr, err := OpenOrCreate(path, common.En, nil)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestOpenOrCreateJapaneseRequiresAnalyzer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ja")
	_, err := OpenOrCreate(path, common.Ja, nil)
	assert.Error(t, err)
}

func TestOpenOrCreateBuildsNewIndex(t *testing.T) {
	mgr := openEnglishManager(t)
	assert.Equal(t, common.En, mgr.Language())
	assert.False(t, mgr.HasNgramField())
}

func TestAddDocumentsSkipsDuplicatesWithinBatch(t *testing.T) {
	mgr := openEnglishManager(t)

	docs := []*model.Document{
		model.NewDocument("doc1", "src1", "hello world"),
		model.NewDocument("doc1", "src1", "hello world again"),
		model.NewDocument("doc2", "src1", "goodbye world"),
	}

	report, err := mgr.AddDocuments(docs)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.SkippedDuplicates)
	assert.False(t, report.IsAllAdded())
}

func TestAddDocumentsSkipsExistingAcrossBatches(t *testing.T) {
	mgr := openEnglishManager(t)

	first, err := mgr.AddDocuments([]*model.Document{model.NewDocument("doc1", "src1", "hello world")})
	require.NoError(t, err)
	assert.True(t, first.IsAllAdded())

	second, err := mgr.AddDocuments([]*model.Document{
		model.NewDocument("doc1", "src1", "hello world"),
		model.NewDocument("doc2", "src1", "another doc"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 1, second.Added)
	assert.Equal(t, 1, second.SkippedDuplicates)
}

func TestAddDocumentsReportIsAllAdded(t *testing.T) {
	r := AddDocumentsReport{Total: 2, Added: 2, SkippedDuplicates: 0}
	assert.True(t, r.IsAllAdded())

	r.recordSkipped()
	assert.False(t, r.IsAllAdded())
}

func TestToIndexDocumentSerializesMetadataAsOneJSONField(t *testing.T) {
	doc := model.NewDocument("doc1", "src1", "hello world").
		WithTags("category:geo").
		WithMetadata("object", map[string]interface{}{"nested": "value"}).
		WithMetadata("deleted_at", nil)

	indexed, err := toIndexDocument(common.En, false, doc)
	require.NoError(t, err)

	raw, ok := indexed[FieldMetadata].(string)
	require.True(t, ok, "metadata field must be a single JSON string")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))

	assert.Equal(t, []interface{}{"category:geo"}, decoded["tags"])
	assert.Equal(t, map[string]interface{}{"nested": "value"}, decoded["object"])

	deletedAt, present := decoded["deleted_at"]
	assert.True(t, present)
	assert.Nil(t, deletedAt)
}

func TestOpenOrCreateReopenRetainsJapaneseTokenizer(t *testing.T) {
	ja := tokenizer.NewJapaneseAnalysisTokenizer(newTestKagomeTokenizer(t))

	path := filepath.Join(t.TempDir(), "ja")
	mgr, err := OpenOrCreate(path, common.Ja, ja)
	require.NoError(t, err)
	_, addErr := mgr.AddDocuments([]*model.Document{model.NewDocument("doc1", "src1", "東京都に行きます")})
	require.NoError(t, addErr)
	require.NoError(t, mgr.Close())

	reopened, err := OpenOrCreate(path, common.Ja, ja)
	require.NoError(t, err, "reopening a persisted Japanese index must not lose its tokenizer")
	defer reopened.Close()

	impl, ok := reopened.Index().Mapping().(*mapping.IndexMappingImpl)
	require.True(t, ok)
	assert.NotNil(t, impl.AnalyzerNamed(textAnalyzerName(common.Ja)))

	_, addErr = reopened.AddDocuments([]*model.Document{model.NewDocument("doc2", "src1", "大阪に住んでいます")})
	assert.NoError(t, addErr, "indexing after reopen must still tokenize Japanese text")
}
