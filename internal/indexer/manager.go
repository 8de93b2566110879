package indexer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/ternarybob/wakeru/internal/common"
	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
	"github.com/ternarybob/wakeru/internal/model"
	"github.com/ternarybob/wakeru/internal/tokenizer"
)

// Manager owns a single per-language bleve index: it opens or creates
// the index on disk, registers the right analyzer chain for its
// language, and commits AddDocuments batches with duplicate-id
// suppression. It is the bleve-backed equivalent of the Tantivy
// IndexManager.
type Manager struct {
	idx      bleve.Index
	language common.Language
	hasNgram bool
}

// OpenOrCreate opens the bleve index rooted at indexPath, creating it
// (directory and all) if it does not yet exist.
//
// Japanese indexes require jaAnalysis, the dictionary-bound tokenizer
// built from a loaded dictionary; English builds its analyzer chain
// entirely from bleve's own components and ignores jaAnalysis.
//
// Opening an existing index whose "text" field analyzer does not
// match the language's expected analyzer name returns an
// IndexerLanguageSchemaMismatch error, mirroring the Tantivy
// implementation's text-tokenizer-name assertion.
func OpenOrCreate(indexPath string, language common.Language, jaAnalysis *tokenizer.JapaneseAnalysisTokenizer) (*Manager, error) {
	if language == common.Ja && jaAnalysis == nil {
		return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerMissingJapaneseTokenizer}
	}

	exists, err := indexExists(indexPath)
	if err != nil {
		return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerInvalidIndexPath, Path: indexPath, Cause: err}
	}

	var idx bleve.Index
	if exists {
		idx, err = bleve.Open(indexPath)
		if err != nil {
			return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: err}
		}
		if err := assertSchemaMatchesLanguage(idx.Mapping(), language); err != nil {
			idx.Close()
			return nil, err
		}
		if language == common.Ja {
			if err := ReattachJapaneseAnalyzer(idx.Mapping(), jaAnalysis); err != nil {
				idx.Close()
				return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: err}
			}
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
			return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerInvalidIndexPath, Path: indexPath, Cause: err}
		}
		m, err := BuildMapping(language, jaAnalysis)
		if err != nil {
			return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: err}
		}
		idx, err = bleve.New(indexPath, m)
		if err != nil {
			return nil, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: err}
		}
	}

	return &Manager{idx: idx, language: language, hasNgram: language == common.Ja}, nil
}

func indexExists(indexPath string) (bool, error) {
	info, err := os.Stat(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("index path %s is not a directory", indexPath)
	}
	entries, err := os.ReadDir(indexPath)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// assertSchemaMatchesLanguage checks that the existing index's "text"
// field was built with the analyzer this language expects.
func assertSchemaMatchesLanguage(m mapping.IndexMapping, language common.Language) error {
	impl, ok := m.(*mapping.IndexMappingImpl)
	if !ok {
		return &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: fmt.Errorf("unexpected mapping implementation")}
	}
	doc, ok := impl.TypeMapping[docType]
	if !ok {
		return &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: fmt.Errorf("index has no %q document mapping", docType)}
	}
	field, ok := doc.Properties[FieldText]
	if !ok || len(field.Fields) == 0 {
		return &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: fmt.Errorf("index has no %q field mapping", FieldText)}
	}

	expected := textAnalyzerName(language)
	actual := field.Fields[0].Analyzer
	if actual != expected {
		return &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerLanguageSchemaMismatch, Expected: expected, Actual: actual}
	}
	return nil
}

// AddDocuments indexes documents not already present, skipping (not
// aborting on) documents whose id either repeats within this batch or
// already exists in the index. Duplicate detection against the
// existing index is a point-in-time check against the index state
// visible when this call began; bleve's single read/write handle
// means every such check sees the state as of the most recent
// successful batch, with no separate "reader has not reloaded yet"
// staleness window to reason about.
func (m *Manager) AddDocuments(documents []*model.Document) (AddDocumentsReport, error) {
	var report AddDocumentsReport
	seen := make(map[string]bool, len(documents))
	batch := m.idx.NewBatch()

	for _, doc := range documents {
		report.recordTotal()

		if seen[doc.ID] {
			report.recordSkipped()
			continue
		}
		seen[doc.ID] = true

		if existing, err := m.idx.Document(doc.ID); err == nil && existing != nil {
			report.recordSkipped()
			continue
		}

		indexDoc, err := toIndexDocument(m.language, m.hasNgram, doc)
		if err != nil {
			return report, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerMetadataSerialize, DocID: doc.ID, Cause: err}
		}
		if err := batch.Index(doc.ID, indexDoc); err != nil {
			return report, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, DocID: doc.ID, Cause: err}
		}
		report.recordAdded()
	}

	if err := m.idx.Batch(batch); err != nil {
		return report, &wakeruerrors.IndexerError{Kind: wakeruerrors.IndexerBackendFailure, Cause: err}
	}
	return report, nil
}

// toIndexDocument converts a Document into the map bleve indexes,
// mirroring Document → TantivyDocument conversion: the n-gram field is
// populated only for Japanese indexes, and metadata is serialized
// whole into a single stored JSON string field rather than handed to
// bleve as a nested map, so arrays, nested objects, and nulls survive
// the round trip instead of being flattened or dropped.
func toIndexDocument(language common.Language, hasNgram bool, doc *model.Document) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"_type":       docType,
		FieldID:       doc.ID,
		FieldSourceID: doc.SourceID,
		FieldText:     doc.Text,
	}
	if hasNgram {
		data[FieldTextNgram] = doc.Text
	}
	if len(doc.Metadata) > 0 {
		encoded, err := json.Marshal(map[string]interface{}(doc.Metadata))
		if err != nil {
			return nil, err
		}
		data[FieldMetadata] = string(encoded)
	}
	return data, nil
}

// Index returns the underlying bleve index, for use by
// internal/searcher.
func (m *Manager) Index() bleve.Index { return m.idx }

// Language returns the language this index was built for.
func (m *Manager) Language() common.Language { return m.language }

// HasNgramField reports whether this index carries a text_ngram field
// (true only for Japanese).
func (m *Manager) HasNgramField() bool { return m.hasNgram }

// Close releases the underlying bleve index handle.
func (m *Manager) Close() error { return m.idx.Close() }
