// Package dictionary manages loading of the Japanese morphological
// dictionary used by internal/tokenizer. It mirrors the memoized,
// mutually-exclusive preset-vs-local-path design of the Rust
// DictionaryManager: each Manager loads its dictionary at most once,
// and every caller of that Manager (success or failure) observes the
// same outcome.
package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"

	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
)

// Preset names a bundled dictionary. Only Ipadic ships compiled into
// this module (via github.com/ikawaha/kagome-dict/ipa); UnidicCwj and
// UnidicCsj are accepted for config-compatibility with the original
// preset names and load only from a caller-supplied kagome dictionary
// file, either at <cache dir>/<preset>/dict.bin or via FromLocalPath
// (see DESIGN.md, Open Questions).
type Preset string

const (
	Ipadic    Preset = "ipadic"
	UnidicCwj Preset = "unidic-cwj"
	UnidicCsj Preset = "unidic-csj"
)

// ParsePreset parses a preset name case-insensitively, matching the
// original wakeru-api env.rs behavior for WAKERU_PRESET_DICT.
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(s) {
	case "ipadic":
		return Ipadic, nil
	case "unidic-cwj":
		return UnidicCwj, nil
	case "unidic-csj":
		return UnidicCsj, nil
	default:
		return "", fmt.Errorf("unknown dictionary preset %q", s)
	}
}

// Dictionary wraps a loaded kagome dictionary for shared, read-only
// use by any number of tokenizers.
type Dictionary struct {
	dict *dict.Dict
}

// Dict returns the underlying kagome dictionary.
func (d *Dictionary) Dict() *dict.Dict { return d.dict }

// Manager loads a dictionary at most once and caches the result
// (success or error) for the lifetime of the process.
type Manager struct {
	cacheDir       string
	preset         *Preset
	dictionaryPath *string

	once    sync.Once
	result  *Dictionary
	loadErr *wakeruerrors.DictionaryError
}

// WithPreset builds a Manager that loads a bundled preset dictionary,
// using the OS-default cache directory (~/.cache/wakeru/dict on
// Linux, ~/Library/Caches/wakeru/dict on macOS, %LOCALAPPDATA%\wakeru\dict
// on Windows, via os.UserCacheDir).
func WithPreset(preset Preset) (*Manager, error) {
	cacheDir, err := defaultCacheDir()
	if err != nil {
		return nil, err
	}
	return &Manager{cacheDir: cacheDir, preset: &preset}, nil
}

// WithCacheDir is WithPreset with an explicit cache directory,
// overriding the OS default (used when Config.Dictionary.CacheDir is
// set).
func WithCacheDir(preset Preset, cacheDir string) *Manager {
	return &Manager{cacheDir: cacheDir, preset: &preset}
}

// FromLocalPath builds a Manager that loads a dictionary from an
// on-disk kagome dictionary file. The cache directory is the file's
// parent directory, matching the Rust implementation.
func FromLocalPath(path string) (*Manager, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("dictionary path not found: %s", path)
	}
	return &Manager{cacheDir: filepath.Dir(path), dictionaryPath: &path}, nil
}

// CacheDir returns the directory this manager caches dictionary
// artifacts under.
func (m *Manager) CacheDir() string { return m.cacheDir }

// Load returns the loaded dictionary, loading it on the first call
// and memoizing the outcome (success or error) for every subsequent
// call.
func (m *Manager) Load() (*Dictionary, *wakeruerrors.DictionaryError) {
	m.once.Do(func() {
		m.result, m.loadErr = m.loadInner()
	})
	return m.result, m.loadErr
}

func (m *Manager) loadInner() (*Dictionary, *wakeruerrors.DictionaryError) {
	if m.dictionaryPath != nil {
		return m.loadFromLocalPath(*m.dictionaryPath)
	}
	if m.preset != nil {
		return m.loadFromPreset(*m.preset)
	}
	return nil, &wakeruerrors.DictionaryError{
		Kind: wakeruerrors.DictionaryInvalidPath,
		Path: m.cacheDir,
		Msg:  "neither a preset nor a local dictionary path was configured",
	}
}

func (m *Manager) loadFromLocalPath(path string) (*Dictionary, *wakeruerrors.DictionaryError) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryInvalidPath, Path: path, Cause: err}
	}
	defer f.Close()

	d, err := dict.Load(f)
	if err != nil {
		return nil, &wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryLoadFailed, Cause: err}
	}
	return &Dictionary{dict: d}, nil
}

// loadFromPreset loads a compiled-in preset dictionary, serializing
// it to the cache directory on first use so that the on-disk cache
// layout (cache_dir/<preset>/) matches the original implementation
// even though the bytes originate from a compiled-in Go package
// rather than a network download. Presets without a compiled-in
// dictionary load only from a kagome dictionary file already present
// at cache_dir/<preset>/dict.bin.
func (m *Manager) loadFromPreset(preset Preset) (*Dictionary, *wakeruerrors.DictionaryError) {
	if preset != Ipadic {
		cachedFile := filepath.Join(m.cacheDir, string(preset), "dict.bin")
		f, err := os.Open(cachedFile)
		if err != nil {
			return nil, &wakeruerrors.DictionaryError{
				Kind: wakeruerrors.DictionaryNotFound,
				Path: cachedFile,
				Msg:  fmt.Sprintf("preset %q has no compiled-in dictionary and no cached dictionary file at %s", preset, cachedFile),
			}
		}
		defer f.Close()
		d, err := dict.Load(f)
		if err != nil {
			return nil, &wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryLoadFailed, Path: cachedFile, Cause: err}
		}
		return &Dictionary{dict: d}, nil
	}

	if err := os.MkdirAll(m.cacheDir, 0o755); err != nil {
		return nil, &wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryCacheDirCreationFailed, Cause: err}
	}

	dictDir := filepath.Join(m.cacheDir, string(preset))
	if err := os.MkdirAll(dictDir, 0o755); err != nil {
		return nil, &wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryCacheDirCreationFailed, Cause: err}
	}

	cachedFile := filepath.Join(dictDir, "dict.bin")
	if f, err := os.Open(cachedFile); err == nil {
		defer f.Close()
		if d, err := dict.Load(f); err == nil {
			return &Dictionary{dict: d}, nil
		}
		// Fall through and rebuild from the compiled-in dictionary if the
		// cached artifact is unreadable.
	}

	d := ipa.Dict()
	if f, err := os.Create(cachedFile); err == nil {
		_ = d.Save(f)
		_ = f.Close()
	}

	return &Dictionary{dict: d}, nil
}

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", &wakeruerrors.DictionaryError{Kind: wakeruerrors.DictionaryCacheDirNotFound, Cause: err}
	}
	return filepath.Join(base, "wakeru", "dict"), nil
}
