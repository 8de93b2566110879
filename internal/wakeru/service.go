package wakeru

import (
	"github.com/ternarybob/wakeru/internal/common"
	"github.com/ternarybob/wakeru/internal/dictionary"
	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
	"github.com/ternarybob/wakeru/internal/indexer"
	"github.com/ternarybob/wakeru/internal/searcher"
	"github.com/ternarybob/wakeru/internal/tokenizer"
)

// perLanguage pairs one language's index manager and search engine so
// the two can never drift apart under a language mismatch.
type perLanguage struct {
	indexManager *indexer.Manager
	searchEngine *searcher.Engine
}

// Service is wakeru's integration façade: dictionary loading, per-
// language index management, and per-language search, all behind a
// single struct a RAG pipeline holds onto.
type Service struct {
	defaultLanguage   Language
	langs             map[Language]*perLanguage
	dictionaryManager *dictionary.Manager
	// japaneseTokenizer is the raw (unfiltered) Japanese tokenizer, kept
	// separately from the per-language index's filtered bleve adapter
	// so the HTTP tokenize endpoint can expose every morpheme, not just
	// the content words the index keeps.
	japaneseTokenizer *tokenizer.JapaneseTokenizer
}

// Init validates cfg, loads the Japanese dictionary if any configured
// language needs it, and opens or creates every configured language's
// index and search engine.
func Init(cfg *common.Config) (*Service, *wakeruerrors.WakeruError) {
	if cfgErr := cfg.Validate(); cfgErr != nil {
		return nil, wakeruerrors.FromConfig(cfgErr)
	}

	defaultLanguage, err := ParseLanguage(cfg.Index.DefaultLanguage)
	if err != nil {
		return nil, wakeruerrors.Unsupported(cfg.Index.DefaultLanguage)
	}

	languages := make([]Language, 0, len(cfg.Index.Languages))
	needsJapanese := false
	for _, code := range cfg.Index.Languages {
		l, err := ParseLanguage(code)
		if err != nil {
			return nil, wakeruerrors.Unsupported(code)
		}
		languages = append(languages, l)
		if l == Ja {
			needsJapanese = true
		}
	}

	var dictManager *dictionary.Manager
	var jaAnalysis *tokenizer.JapaneseAnalysisTokenizer
	var jaTokenizer *tokenizer.JapaneseTokenizer
	if needsJapanese {
		preset, err := dictionary.ParsePreset(cfg.Dictionary.Preset)
		if err != nil {
			return nil, wakeruerrors.FromDictionary(&wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryInvalidPath, Msg: err.Error()})
		}
		if cfg.Dictionary.CacheDir != "" {
			dictManager = dictionary.WithCacheDir(preset, cfg.Dictionary.CacheDir)
		} else {
			dictManager, err = dictionary.WithPreset(preset)
			if err != nil {
				return nil, wakeruerrors.FromDictionary(&wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryCacheDirNotFound, Cause: err})
			}
		}

		dict, dictErr := dictManager.Load()
		if dictErr != nil {
			return nil, wakeruerrors.FromDictionary(dictErr)
		}

		jt, err := tokenizer.NewJapaneseTokenizer(dict.Dict())
		if err != nil {
			return nil, wakeruerrors.FromTokenizer(&wakeruerrors.TokenizerError{Reason: err.Error()})
		}
		jaTokenizer = jt
		jaAnalysis = tokenizer.NewJapaneseAnalysisTokenizer(jaTokenizer)
	}

	langs := make(map[Language]*perLanguage, len(languages))
	for _, lang := range languages {
		indexPath := cfg.IndexPathForLanguage(string(lang))

		var analysisTokenizer *tokenizer.JapaneseAnalysisTokenizer
		if lang == Ja {
			analysisTokenizer = jaAnalysis
		}

		indexManager, err := indexer.OpenOrCreate(indexPath, lang, analysisTokenizer)
		if err != nil {
			return nil, &wakeruerrors.WakeruError{Indexer: err.(*wakeruerrors.IndexerError)}
		}
		searchEngine := searcher.New(indexManager)

		langs[lang] = &perLanguage{indexManager: indexManager, searchEngine: searchEngine}
	}

	return &Service{
		defaultLanguage:   defaultLanguage,
		langs:             langs,
		dictionaryManager: dictManager,
		japaneseTokenizer: jaTokenizer,
	}, nil
}

// JapaneseTokenizer returns the raw Japanese morphological tokenizer,
// or nil if no configured language required Japanese. Used by the
// HTTP tokenize endpoint, which reports every morpheme rather than
// only the content words an index stores.
func (s *Service) JapaneseTokenizer() *tokenizer.JapaneseTokenizer { return s.japaneseTokenizer }

func (s *Service) resolve(language Language) (*perLanguage, *wakeruerrors.WakeruError) {
	p, ok := s.langs[language]
	if !ok {
		return nil, wakeruerrors.Unsupported(string(language))
	}
	return p, nil
}

// IndexDocumentsWithLanguage indexes documents into the given
// language's index, returning the batch's AddDocumentsReport.
func (s *Service) IndexDocumentsWithLanguage(language Language, documents []*Document) (indexer.AddDocumentsReport, *wakeruerrors.WakeruError) {
	p, werr := s.resolve(language)
	if werr != nil {
		return indexer.AddDocumentsReport{}, werr
	}
	report, err := p.indexManager.AddDocuments(documents)
	if err != nil {
		return report, &wakeruerrors.WakeruError{Indexer: err.(*wakeruerrors.IndexerError)}
	}
	return report, nil
}

// IndexDocuments indexes documents into the default language's index.
func (s *Service) IndexDocuments(documents []*Document) (indexer.AddDocumentsReport, *wakeruerrors.WakeruError) {
	return s.IndexDocumentsWithLanguage(s.defaultLanguage, documents)
}

// SearchWithLanguage runs a BM25 query-string search against the
// given language's index.
func (s *Service) SearchWithLanguage(language Language, query string, limit int) ([]SearchResult, *wakeruerrors.WakeruError) {
	p, werr := s.resolve(language)
	if werr != nil {
		return nil, werr
	}
	results, err := p.searchEngine.Search(query, limit)
	if err != nil {
		return nil, asWakeruError(err)
	}
	return results, nil
}

// Search runs a BM25 query-string search against the default
// language's index.
func (s *Service) Search(query string, limit int) ([]SearchResult, *wakeruerrors.WakeruError) {
	return s.SearchWithLanguage(s.defaultLanguage, query, limit)
}

// SearchTokensOrWithLanguage tokenizes query with the given language's
// own analyzer and runs an OR search across the resulting tokens.
func (s *Service) SearchTokensOrWithLanguage(language Language, query string, limit int) ([]SearchResult, *wakeruerrors.WakeruError) {
	p, werr := s.resolve(language)
	if werr != nil {
		return nil, werr
	}
	results, err := p.searchEngine.SearchTokensOr(query, limit)
	if err != nil {
		return nil, asWakeruError(err)
	}
	return results, nil
}

// SearchTokensOr tokenizes query with the default language's own
// analyzer and runs an OR search across the resulting tokens.
func (s *Service) SearchTokensOr(query string, limit int) ([]SearchResult, *wakeruerrors.WakeruError) {
	return s.SearchTokensOrWithLanguage(s.defaultLanguage, query, limit)
}

// DefaultLanguage returns the language Search/IndexDocuments delegate
// to when no language is named explicitly.
func (s *Service) DefaultLanguage() Language { return s.defaultLanguage }

// SupportedLanguages returns every language this Service was
// initialized with an index for.
func (s *Service) SupportedLanguages() []Language {
	langs := make([]Language, 0, len(s.langs))
	for l := range s.langs {
		langs = append(langs, l)
	}
	return langs
}

// IsLanguageSupported reports whether language has an index open.
func (s *Service) IsLanguageSupported(language Language) bool {
	_, ok := s.langs[language]
	return ok
}

// DictionaryManager returns the Japanese dictionary manager, or nil if
// no configured language required one.
func (s *Service) DictionaryManager() *dictionary.Manager { return s.dictionaryManager }

// IndexManager returns the index manager for language, or nil if
// unsupported.
func (s *Service) IndexManager(language Language) *indexer.Manager {
	if p, ok := s.langs[language]; ok {
		return p.indexManager
	}
	return nil
}

// SearchEngine returns the search engine for language, or nil if
// unsupported.
func (s *Service) SearchEngine(language Language) *searcher.Engine {
	if p, ok := s.langs[language]; ok {
		return p.searchEngine
	}
	return nil
}

// asWakeruError wraps a plain error returned by internal/searcher as
// a WakeruError, passing an already-typed *WakeruError through as-is.
func asWakeruError(err error) *wakeruerrors.WakeruError {
	if we, ok := err.(*wakeruerrors.WakeruError); ok {
		return we
	}
	return &wakeruerrors.WakeruError{Searcher: &wakeruerrors.SearcherError{Kind: wakeruerrors.SearcherBackendFailure, Cause: err}}
}
