package searcher

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/ternarybob/wakeru/internal/common"
	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
	"github.com/ternarybob/wakeru/internal/indexer"
	"github.com/ternarybob/wakeru/internal/model"
)

// Engine executes BM25-ranked queries against one language's bleve
// index, the Go equivalent of the Rust SearchEngine.
type Engine struct {
	idx      bleve.Index
	language common.Language
	hasNgram bool
}

// New builds a search engine over an already-open index manager.
// Because bleve exposes a single read/write handle, there is no
// separate "reader" to construct here the way Tantivy's SearchEngine
// built its own IndexReader distinct from IndexManager's: every
// Engine sees documents as of the index's last successful batch
// immediately, with none of the "construct a fresh service to observe
// new documents" caveat the Tantivy test suite works around.
func New(mgr *indexer.Manager) *Engine {
	return &Engine{idx: mgr.Index(), language: mgr.Language(), hasNgram: mgr.HasNgramField()}
}

// Language returns the language this engine searches.
func (e *Engine) Language() common.Language { return e.language }

// Search runs queryStr through bleve's own query-string syntax against
// the text field and returns up to limit BM25-ranked results.
func (e *Engine) Search(queryStr string, limit int) ([]model.SearchResult, error) {
	q := bleve.NewQueryStringQuery(queryStr)
	return e.run(q, limit)
}

// SearchTokensOr tokenizes queryStr with this language's own analyzer
// (the same one used at index time) and runs an OR search across the
// resulting terms. Single-character Japanese tokens are additionally
// matched against the text_ngram field, since a single kanji or kana
// character is too short for morphological tokenization at query time
// to reliably recover the term a short document indexed it as.
func (e *Engine) SearchTokensOr(queryStr string, limit int) ([]model.SearchResult, error) {
	tokens, err := e.tokenizeQuery(queryStr)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return []model.SearchResult{}, nil
	}

	morphQueries := make([]query.Query, 0, len(tokens))
	for _, t := range tokens {
		tq := bleve.NewTermQuery(t)
		tq.SetField(indexer.FieldText)
		morphQueries = append(morphQueries, tq)
	}

	subqueries := append([]query.Query{}, morphQueries...)
	if e.hasNgram {
		for _, t := range tokens {
			if utf8.RuneCountInString(t) != 1 {
				continue
			}
			tq := bleve.NewTermQuery(t)
			tq.SetField(indexer.FieldTextNgram)
			subqueries = append(subqueries, tq)
		}
	}

	return e.run(bleve.NewDisjunctionQuery(subqueries...), limit)
}

func (e *Engine) tokenizeQuery(queryStr string) ([]string, error) {
	impl, ok := e.idx.Mapping().(*mapping.IndexMappingImpl)
	if !ok {
		return nil, &wakeruerrors.WakeruError{Searcher: &wakeruerrors.SearcherError{
			Kind: wakeruerrors.SearcherInvalidQuery, Reason: "index mapping is not the expected implementation",
		}}
	}
	name := "lang_" + string(e.language)
	analyzer, ok := impl.AnalyzerNamed(name).(*analysis.DefaultAnalyzer)
	if !ok {
		return nil, &wakeruerrors.WakeruError{Searcher: &wakeruerrors.SearcherError{
			Kind: wakeruerrors.SearcherInvalidQuery, Reason: "tokenizer `" + name + "` is not registered",
		}}
	}
	return tokenizeWithAnalyzer(analyzer, queryStr).Tokens, nil
}

func (e *Engine) run(q query.Query, limit int) ([]model.SearchResult, error) {
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{indexer.FieldID, indexer.FieldSourceID, indexer.FieldText, indexer.FieldMetadata}

	res, err := e.idx.Search(req)
	if err != nil {
		return nil, &wakeruerrors.WakeruError{Searcher: &wakeruerrors.SearcherError{
			Kind: wakeruerrors.SearcherBackendFailure, Cause: err,
		}}
	}

	results := make([]model.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		result, searchErr := toSearchResult(hit)
		if searchErr != nil {
			return nil, &wakeruerrors.WakeruError{Searcher: searchErr}
		}
		results = append(results, result)
	}
	return results, nil
}

func toSearchResult(hit *search.DocumentMatch) (model.SearchResult, *wakeruerrors.SearcherError) {
	id, ok := stringField(hit.Fields, indexer.FieldID)
	if !ok {
		return model.SearchResult{}, &wakeruerrors.SearcherError{
			Kind: wakeruerrors.SearcherInvalidIndex, Field: indexer.FieldID, Reason: "missing stored field", DocID: hit.ID,
		}
	}
	sourceID, ok := stringField(hit.Fields, indexer.FieldSourceID)
	if !ok {
		return model.SearchResult{}, &wakeruerrors.SearcherError{
			Kind: wakeruerrors.SearcherInvalidIndex, Field: indexer.FieldSourceID, Reason: "missing stored field", DocID: id,
		}
	}
	text, _ := stringField(hit.Fields, indexer.FieldText)

	metadata, err := metadataFromHit(hit.Fields, id)
	if err != nil {
		return model.SearchResult{}, err
	}

	return model.SearchResult{
		DocID:    id,
		SourceID: sourceID,
		Score:    hit.Score,
		Text:     text,
		Metadata: metadata,
	}, nil
}

func stringField(fields map[string]interface{}, name string) (string, bool) {
	v, ok := fields[name].(string)
	return v, ok
}

// metadataFromHit reconstructs a Metadata map from the single stored
// JSON-object field indexer.toIndexDocument serialized the whole
// metadata map into, rather than decomposing per-key subfields that
// cannot represent an array, a nested object, or a null value.
func metadataFromHit(fields map[string]interface{}, docID string) (model.Metadata, *wakeruerrors.SearcherError) {
	raw, ok := stringField(fields, indexer.FieldMetadata)
	if !ok || raw == "" {
		return nil, nil
	}
	var metadata model.Metadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, &wakeruerrors.SearcherError{Kind: wakeruerrors.SearcherMetadataDeserialize, DocID: docID, Cause: err}
	}
	return metadata, nil
}
