// Package errors defines the typed error hierarchy shared by every
// wakeru subsystem. Every variant is a plain, comparable struct so a
// single error value can be memoized and handed to many callers
// (see internal/dictionary, whose Manager caches a DictionaryError
// exactly once for the lifetime of the process).
package errors

import "fmt"

// ConfigError reports an invalid Config value. The field order below
// mirrors the validation priority order in Config.Validate: the
// first violated rule wins.
type ConfigError struct {
	Kind ConfigErrorKind

	Language       string // DefaultLanguageNotInLanguages
	Actual         int64  // InvalidSearchDefaultLimit / InvalidBatchCommitSize
	DefaultLimit   int64  // InvalidSearchMaxLimit
	MaxLimit       int64  // InvalidSearchMaxLimit
	Min            uint64 // InvalidWriterMemoryBytes
	Max            uint64 // InvalidWriterMemoryBytes
	Path           string // InvalidDictionaryCacheDir / DictionaryCacheDirCreationFailed
	Cause          error
}

type ConfigErrorKind int

const (
	ConfigEmptyLanguages ConfigErrorKind = iota
	ConfigDefaultLanguageNotInLanguages
	ConfigInvalidSearchDefaultLimit
	ConfigInvalidSearchMaxLimit
	ConfigInvalidWriterMemoryBytes
	ConfigInvalidBatchCommitSize
	ConfigInvalidDictionaryCacheDir
	ConfigDictionaryCacheDirCreationFailed
)

func (e *ConfigError) Error() string {
	switch e.Kind {
	case ConfigEmptyLanguages:
		return "languages に少なくとも1つの言語を指定してください"
	case ConfigDefaultLanguageNotInLanguages:
		return fmt.Sprintf("default_language (%s) は languages に含まれている必要があります", e.Language)
	case ConfigInvalidSearchDefaultLimit:
		return fmt.Sprintf("search.default_limit は 1 以上である必要があります: actual=%d", e.Actual)
	case ConfigInvalidSearchMaxLimit:
		return fmt.Sprintf("search.max_limit は search.default_limit 以上である必要があります: default_limit=%d, max_limit=%d", e.DefaultLimit, e.MaxLimit)
	case ConfigInvalidWriterMemoryBytes:
		return fmt.Sprintf("index.writer_memory_bytes は %d〜%d バイトの範囲で指定してください: actual=%d", e.Min, e.Max, e.Actual)
	case ConfigInvalidBatchCommitSize:
		return fmt.Sprintf("index.batch_commit_size は 1 以上である必要があります: actual=%d", e.Actual)
	case ConfigInvalidDictionaryCacheDir:
		return fmt.Sprintf("dictionary.cache_dir がディレクトリではありません: path=%s", e.Path)
	case ConfigDictionaryCacheDirCreationFailed:
		return fmt.Sprintf("dictionary.cache_dir の作成に失敗しました: path=%s, error=%v", e.Path, e.Cause)
	default:
		return "invalid config"
	}
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// DictionaryError reports a failure loading or locating a tokenizer
// dictionary.
type DictionaryError struct {
	Kind  DictionaryErrorKind
	Path  string
	Msg   string
	Cause error
}

type DictionaryErrorKind int

const (
	DictionaryCacheDirNotFound DictionaryErrorKind = iota
	DictionaryCacheDirCreationFailed
	DictionaryNotFound
	DictionaryDownloadFailed
	DictionaryValidationFailed
	DictionaryInvalidPath
	DictionaryLoadFailed
)

func (e *DictionaryError) Error() string {
	switch e.Kind {
	case DictionaryCacheDirNotFound:
		return "辞書キャッシュディレクトリーが見つかりません"
	case DictionaryCacheDirCreationFailed:
		return fmt.Sprintf("辞書キャッシュディレクトリーの作成に失敗しました: %v", e.Cause)
	case DictionaryNotFound:
		return fmt.Sprintf("指定された辞書が見つかりません: %s", e.Msg)
	case DictionaryDownloadFailed:
		return fmt.Sprintf("辞書のダウンロードに失敗しました: %s", e.Msg)
	case DictionaryValidationFailed:
		return fmt.Sprintf("辞書の検証に失敗しました: %s", e.Msg)
	case DictionaryInvalidPath:
		return fmt.Sprintf("辞書パスが不正です: %s", e.Path)
	case DictionaryLoadFailed:
		return fmt.Sprintf("kagome 辞書ロードエラー: %v", e.Cause)
	default:
		return "dictionary error"
	}
}

func (e *DictionaryError) Unwrap() error { return e.Cause }

// TokenizerError reports a failure tokenizing input text.
type TokenizerError struct {
	Dictionary *DictionaryError
	Reason     string
}

func (e *TokenizerError) Error() string {
	if e.Dictionary != nil {
		return fmt.Sprintf("辞書エラー: %v", e.Dictionary)
	}
	return fmt.Sprintf("トークナイズ対象の入力テキストが不正: %s", e.Reason)
}

func (e *TokenizerError) Unwrap() error {
	if e.Dictionary != nil {
		return e.Dictionary
	}
	return nil
}

// IndexerError reports a failure building, opening, or writing an
// index.
type IndexerError struct {
	Kind      IndexerErrorKind
	Tokenizer *TokenizerError
	Path      string
	DocID     string
	Expected  string
	Actual    string
	Cause     error
}

type IndexerErrorKind int

const (
	IndexerTokenizerFailure IndexerErrorKind = iota
	IndexerBackendFailure
	IndexerInvalidIndexPath
	IndexerIndexAlreadyExists
	IndexerIndexNotFound
	IndexerMissingJapaneseTokenizer
	IndexerLanguageSchemaMismatch
	IndexerMetadataSerialize
)

func (e *IndexerError) Error() string {
	switch e.Kind {
	case IndexerTokenizerFailure:
		return fmt.Sprintf("トークナイザーエラー: %v", e.Tokenizer)
	case IndexerBackendFailure:
		return fmt.Sprintf("インデックスエラー: %v", e.Cause)
	case IndexerInvalidIndexPath:
		return fmt.Sprintf("インデックスパスが不正: %s: %v", e.Path, e.Cause)
	case IndexerIndexAlreadyExists:
		return fmt.Sprintf("インデックスは既に存在します: %s", e.Path)
	case IndexerIndexNotFound:
		return fmt.Sprintf("インデックスが見つかりません: %s", e.Path)
	case IndexerMissingJapaneseTokenizer:
		return "日本語インデックスには Japanese tokenizer が必要です"
	case IndexerLanguageSchemaMismatch:
		return fmt.Sprintf("スキーマと言語が一致しません: expected=%s, actual=%s", e.Expected, e.Actual)
	case IndexerMetadataSerialize:
		return fmt.Sprintf("メタデータのシリアライズに失敗しました: doc_id=%s, error=%v", e.DocID, e.Cause)
	default:
		return "indexer error"
	}
}

func (e *IndexerError) Unwrap() error {
	if e.Tokenizer != nil {
		return e.Tokenizer
	}
	return e.Cause
}

// SearcherError reports a failure executing or parsing a search.
type SearcherError struct {
	Kind   SearcherErrorKind
	Field  string
	Reason string
	DocID  string
	Cause  error
}

type SearcherErrorKind int

const (
	SearcherBackendFailure SearcherErrorKind = iota
	SearcherInvalidQuery
	SearcherInvalidIndex
	SearcherMetadataDeserialize
)

func (e *SearcherError) Error() string {
	switch e.Kind {
	case SearcherBackendFailure:
		return fmt.Sprintf("検索エラー: %v", e.Cause)
	case SearcherInvalidQuery:
		return fmt.Sprintf("クエリ解析エラー: %s", e.Reason)
	case SearcherInvalidIndex:
		return fmt.Sprintf("インデックスが不正です: field=%s, reason=%s", e.Field, e.Reason)
	case SearcherMetadataDeserialize:
		return fmt.Sprintf("メタデータのデシリアライズに失敗しました: doc_id=%s, error=%v", e.DocID, e.Cause)
	default:
		return "searcher error"
	}
}

func (e *SearcherError) Unwrap() error { return e.Cause }

// WakeruError is the single error type returned across the public
// API surface of the wakeru module. Exactly one of its fields is set.
type WakeruError struct {
	Dictionary *DictionaryError
	Tokenizer  *TokenizerError
	Indexer    *IndexerError
	Searcher   *SearcherError
	Config     *ConfigError

	// UnsupportedLanguage is set when the caller names a language the
	// Service was not configured to support.
	UnsupportedLanguage string
}

func (e *WakeruError) Error() string {
	switch {
	case e.Dictionary != nil:
		return e.Dictionary.Error()
	case e.Tokenizer != nil:
		return e.Tokenizer.Error()
	case e.Indexer != nil:
		return e.Indexer.Error()
	case e.Searcher != nil:
		return e.Searcher.Error()
	case e.Config != nil:
		return e.Config.Error()
	case e.UnsupportedLanguage != "":
		return fmt.Sprintf("サポートされていない言語です: %s", e.UnsupportedLanguage)
	default:
		return "unknown wakeru error"
	}
}

func (e *WakeruError) Unwrap() error {
	switch {
	case e.Dictionary != nil:
		return e.Dictionary
	case e.Tokenizer != nil:
		return e.Tokenizer
	case e.Indexer != nil:
		return e.Indexer
	case e.Searcher != nil:
		return e.Searcher
	case e.Config != nil:
		return e.Config
	default:
		return nil
	}
}

// FromConfig wraps a ConfigError as a WakeruError.
func FromConfig(err *ConfigError) *WakeruError { return &WakeruError{Config: err} }

// FromDictionary wraps a DictionaryError as a WakeruError.
func FromDictionary(err *DictionaryError) *WakeruError { return &WakeruError{Dictionary: err} }

// FromTokenizer wraps a TokenizerError as a WakeruError.
func FromTokenizer(err *TokenizerError) *WakeruError { return &WakeruError{Tokenizer: err} }

// FromIndexer wraps an IndexerError as a WakeruError.
func FromIndexer(err *IndexerError) *WakeruError { return &WakeruError{Indexer: err} }

// FromSearcher wraps a SearcherError as a WakeruError.
func FromSearcher(err *SearcherError) *WakeruError { return &WakeruError{Searcher: err} }

// Unsupported builds an UnsupportedLanguage WakeruError.
func Unsupported(language string) *WakeruError {
	return &WakeruError{UnsupportedLanguage: language}
}
