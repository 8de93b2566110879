// Package indexer builds per-language bleve index mappings and manages
// opening, creating, and writing to the on-disk index for a single
// language.
package indexer

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/letter"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/ternarybob/wakeru/internal/tokenizer"
	"github.com/ternarybob/wakeru/internal/common"
)

// Field names used in every document mapping. Kept as constants so
// internal/searcher can reference the same strings without importing
// anything other than this package.
const (
	FieldID        = "id"
	FieldSourceID  = "source_id"
	FieldText      = "text"
	FieldTextNgram = "text_ngram"
	FieldMetadata  = "metadata"

	docType = "chunk"
)

// textAnalyzerName returns the name of the custom analyzer used for
// the "text" field of the given language.
func textAnalyzerName(language common.Language) string {
	return "lang_" + string(language)
}

// ngramAnalyzerName is the name of the always-registered Japanese
// N-gram analyzer, used by the "text_ngram" field.
const ngramAnalyzerName = "ja_ngram"

// BuildMapping constructs the bleve index mapping for a language.
//
// English builds its analyzer entirely from bleve's own components
// (bleve's letter tokenizer, lower-casing, and the Porter-derived
// English stemmer bleve ships), matching the Rust SimpleTokenizer +
// LowerCaser chain. Japanese requires a *tokenizer.JapaneseAnalysisTokenizer
// bound to a loaded dictionary; jaAnalysis must be non-nil in that case.
func BuildMapping(language common.Language, jaAnalysis *tokenizer.JapaneseAnalysisTokenizer) (mapping.IndexMapping, error) {
	m := bleve.NewIndexMapping()
	m.TypeField = "_type"
	m.DefaultField = FieldText
	m.DefaultMapping = bleve.NewDocumentDisabledMapping()

	switch language {
	case common.En:
		if err := registerEnglishAnalyzer(m); err != nil {
			return nil, err
		}
	case common.Ja:
		if jaAnalysis == nil {
			return nil, fmt.Errorf("wakeru: japanese mapping requires a dictionary-bound tokenizer")
		}
		if err := registerJapaneseAnalyzer(m, jaAnalysis); err != nil {
			return nil, err
		}
		if err := registerNgramAnalyzer(m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("wakeru: unsupported language %q", language)
	}

	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt(FieldID, exactMatchField())
	doc.AddFieldMappingsAt(FieldSourceID, exactMatchField())
	doc.AddFieldMappingsAt(FieldText, textField(textAnalyzerName(language)))
	doc.AddFieldMappingsAt(FieldMetadata, metadataField())

	if language == common.Ja {
		doc.AddFieldMappingsAt(FieldTextNgram, ngramField())
	}

	m.AddDocumentMapping(docType, doc)
	return m, nil
}

// exactMatchField mirrors Tantivy's STRING|STORED: indexed as a single
// untokenized term, stored for retrieval.
func exactMatchField() *mapping.FieldMapping {
	f := bleve.NewTextFieldMapping()
	f.Analyzer = keyword.Name
	f.Store = true
	f.IncludeInAll = false
	return f
}

// textField mirrors Tantivy's TEXT|STORED with freqs-and-positions:
// stored, tokenized with the language-specific analyzer, with term
// vectors enabled so phrase queries work.
func textField(analyzerName string) *mapping.FieldMapping {
	f := bleve.NewTextFieldMapping()
	f.Analyzer = analyzerName
	f.Store = true
	f.IncludeTermVectors = true
	f.IncludeInAll = false
	return f
}

// ngramField mirrors Tantivy's TEXT (not stored) with the ja_ngram
// tokenizer: indexed only, used for single-character query fallback.
func ngramField() *mapping.FieldMapping {
	f := bleve.NewTextFieldMapping()
	f.Analyzer = ngramAnalyzerName
	f.Store = false
	f.IncludeTermVectors = true
	f.IncludeInAll = false
	return f
}

// metadataField mirrors Tantivy's JsonObject field stored but not
// decomposed: the whole metadata map is marshaled to one JSON string
// by the caller and stored verbatim here, unindexed. A bleve dynamic
// sub-document would flatten each key into its own stored subfield,
// which cannot represent an array, a nested object, or a null value
// once read back — storing the serialized blob keeps the round trip
// exact.
func metadataField() *mapping.FieldMapping {
	f := bleve.NewTextFieldMapping()
	f.Analyzer = keyword.Name
	f.Store = true
	f.Index = false
	f.IncludeInAll = false
	return f
}

// ReattachJapaneseAnalyzer re-registers a freshly loaded Japanese
// tokenizer instance against a mapping read back from disk by
// bleve.Open. bleve persists an IndexMapping as JSON; the
// *tokenizer.JapaneseAnalysisTokenizer held by the "custom" tokenizer
// config has only an unexported field and serializes to "{}", so the
// instance bleve reconstructs from disk fails the tokenizer's own
// type assertion the first time the analyzer is resolved. Call this
// once, immediately after opening a persisted Japanese index, with the
// process's live dictionary-bound tokenizer.
func ReattachJapaneseAnalyzer(m mapping.IndexMapping, jaAnalysis *tokenizer.JapaneseAnalysisTokenizer) error {
	impl, ok := m.(*mapping.IndexMappingImpl)
	if !ok {
		return fmt.Errorf("wakeru: index mapping is not the expected implementation")
	}
	if jaAnalysis == nil {
		return fmt.Errorf("wakeru: japanese mapping requires a dictionary-bound tokenizer")
	}
	if err := registerJapaneseAnalyzer(impl, jaAnalysis); err != nil {
		return err
	}
	return registerNgramAnalyzer(impl)
}

func registerEnglishAnalyzer(m *mapping.IndexMappingImpl) error {
	name := textAnalyzerName(common.En)
	return m.AddCustomAnalyzer(name, map[string]interface{}{
		"type":          "custom",
		"tokenizer":     letter.Name,
		"token_filters": []string{"to_lower", en.StemmerName},
	})
}

func registerJapaneseAnalyzer(m *mapping.IndexMappingImpl, jaAnalysis *tokenizer.JapaneseAnalysisTokenizer) error {
	tokenizerName := "wakeru_japanese_instance_tokenizer"
	if err := m.AddCustomTokenizer(tokenizerName, map[string]interface{}{
		"type":                      tokenizer.RegisteredTokenizerType,
		tokenizer.InstanceConfigKey: jaAnalysis,
	}); err != nil {
		return err
	}

	name := textAnalyzerName(common.Ja)
	return m.AddCustomAnalyzer(name, map[string]interface{}{
		"type":      "custom",
		"tokenizer": tokenizerName,
	})
}

func registerNgramAnalyzer(m *mapping.IndexMappingImpl) error {
	filterName := "wakeru_ja_ngram_filter"
	if err := m.AddCustomTokenFilter(filterName, map[string]interface{}{
		"type": "ngram",
		"min":  1.0,
		"max":  1.0,
	}); err != nil {
		return err
	}

	return m.AddCustomAnalyzer(ngramAnalyzerName, map[string]interface{}{
		"type":          "custom",
		"tokenizer":     "single",
		"token_filters": []string{filterName},
	})
}
