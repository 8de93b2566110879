package wakeru

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/wakeru/internal/common"
)

func englishOnlyConfig(t *testing.T) *common.Config {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Index.Languages = []string{"en"}
	cfg.Index.DefaultLanguage = "en"
	cfg.Index.DataDir = filepath.Join(t.TempDir(), "index")
	return cfg
}

func TestInitPropagatesConfigValidationError(t *testing.T) {
	cfg := englishOnlyConfig(t)
	cfg.Index.Languages = nil

	svc, err := Init(cfg)
	assert.Nil(t, svc)
	require.NotNil(t, err)
	assert.NotNil(t, err.Config)
}

func TestInitRejectsUnsupportedLanguage(t *testing.T) {
	cfg := englishOnlyConfig(t)
	cfg.Index.Languages = []string{"fr"}
	cfg.Index.DefaultLanguage = "fr"

	svc, err := Init(cfg)
	assert.Nil(t, svc)
	require.NotNil(t, err)
}

func TestInitEnglishOnlyHasNoJapaneseTokenizer(t *testing.T) {
	cfg := englishOnlyConfig(t)

	svc, err := Init(cfg)
	require.Nil(t, err)
	require.NotNil(t, svc)

	assert.Nil(t, svc.JapaneseTokenizer())
	assert.Equal(t, En, svc.DefaultLanguage())
	assert.True(t, svc.IsLanguageSupported(En))
	assert.False(t, svc.IsLanguageSupported(Ja))
}

func TestIndexAndSearchRoundTrip(t *testing.T) {
	cfg := englishOnlyConfig(t)

	svc, err := Init(cfg)
	require.Nil(t, err)

	docs := []*Document{
		NewDocument("doc1", "src1", "the quick brown fox"),
		NewDocument("doc2", "src1", "the lazy dog sleeps"),
	}

	report, werr := svc.IndexDocuments(docs)
	require.Nil(t, werr)
	assert.Equal(t, 2, report.Added)

	results, werr := svc.Search("fox", 10)
	require.Nil(t, werr)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].DocID)
}

func TestSearchWithLanguageRejectsUnconfiguredLanguage(t *testing.T) {
	cfg := englishOnlyConfig(t)

	svc, err := Init(cfg)
	require.Nil(t, err)

	_, werr := svc.SearchWithLanguage(Ja, "query", 10)
	assert.NotNil(t, werr)
}
