package searcher

import (
	"testing"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/wakeru/internal/common"
	"github.com/ternarybob/wakeru/internal/indexer"
)

func englishAnalyzer(t *testing.T) *analysis.DefaultAnalyzer {
	t.Helper()
	m, err := indexer.BuildMapping(common.En, nil)
	require.NoError(t, err)

	impl, ok := m.(*mapping.IndexMappingImpl)
	require.True(t, ok)

	a := impl.AnalyzerNamed("lang_en")
	require.NotNil(t, a)

	analyzer, ok := a.(*analysis.DefaultAnalyzer)
	require.True(t, ok)
	return analyzer
}

func TestTokenizeWithAnalyzerDedupsPreservingOrder(t *testing.T) {
	a := englishAnalyzer(t)

	result := tokenizeWithAnalyzer(a, "the cats running and the cats ran")

	assert.Equal(t, []string{"the", "cat", "run", "and", "ran"}, result.Tokens)
}

func TestTokenizeWithAnalyzerEmptyInput(t *testing.T) {
	a := englishAnalyzer(t)

	result := tokenizeWithAnalyzer(a, "")

	assert.Empty(t, result.Tokens)
}
