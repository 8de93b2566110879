package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
)

// Config is wakeru's top-level configuration, loaded from one or more
// TOML files and then overridden by WAKERU_* environment variables.
type Config struct {
	Dictionary DictionaryConfig `toml:"dictionary"`
	Index      IndexConfig      `toml:"index"`
	Search     SearchConfig     `toml:"search"`
	Logging    LoggingConfig    `toml:"logging"`
	Server     ServerConfig     `toml:"server"`
}

// DictionaryConfig configures the Japanese morphological dictionary.
type DictionaryConfig struct {
	Preset   string `toml:"preset"`    // "ipadic" | "unidic-cwj" | "unidic-csj"
	CacheDir string `toml:"cache_dir"` // empty uses the OS default cache dir
}

// IndexConfig configures the bleve index layer shared by every
// language.
type IndexConfig struct {
	DataDir           string   `toml:"data_dir"`
	WriterMemoryBytes uint64   `toml:"writer_memory_bytes"`
	BatchCommitSize   int64    `toml:"batch_commit_size"`
	Languages         []string `toml:"languages"`
	DefaultLanguage   string   `toml:"default_language"`
}

// SearchConfig bounds the result-count a caller may request.
type SearchConfig struct {
	DefaultLimit int64 `toml:"default_limit"`
	MaxLimit     int64 `toml:"max_limit"`
}

// LoggingConfig mirrors the teacher's arbor-backed logging setup.
type LoggingConfig struct {
	Level         string   `toml:"level"`  // "trace" | "debug" | "info" | "warn" | "error"
	Format        string   `toml:"format"` // "json" or "text"
	Output        []string `toml:"output"` // "stdout", "file"
	MinEventLevel string   `toml:"min_event_level"`
	FilePath      string   `toml:"file_path"`
	TimeFormat    string   `toml:"time_format"`
}

// ServerConfig configures the HTTP façade.
type ServerConfig struct {
	Port    int    `toml:"port"`
	Host    string `toml:"host"`
	BaseURL string `toml:"base_url"`
}

// NewDefaultConfig returns wakeru's built-in defaults, applied before
// any config file or environment variable.
func NewDefaultConfig() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Preset: "ipadic",
		},
		Index: IndexConfig{
			DataDir:           "./data/index",
			WriterMemoryBytes: 50_000_000,
			BatchCommitSize:   500,
			Languages:         []string{"ja"},
			DefaultLanguage:   "ja",
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		Server: ServerConfig{
			Port:    5530,
			Host:    "127.0.0.1",
			BaseURL: "127.0.0.1:5530",
		},
	}
}

// LoadFromFile is LoadFromFiles for a single, possibly-empty path.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration with priority: default -> file1 ->
// ... -> fileN -> environment. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies WAKERU_* environment variable overrides,
// the highest-priority layer. WAKERU_API_BASE_URL and
// WAKERU_PRESET_DICT match the original wakeru-api binary's env names
// exactly; the rest follow the WAKERU_<SECTION>_<FIELD> convention.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("WAKERU_PRESET_DICT"); v != "" {
		config.Dictionary.Preset = v
	}
	if v := os.Getenv("WAKERU_DICTIONARY_CACHE_DIR"); v != "" {
		config.Dictionary.CacheDir = v
	}

	if v := os.Getenv("WAKERU_INDEX_DATA_DIR"); v != "" {
		config.Index.DataDir = v
	}
	if v := os.Getenv("WAKERU_INDEX_WRITER_MEMORY_BYTES"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Index.WriterMemoryBytes = n
		}
	}
	if v := os.Getenv("WAKERU_INDEX_BATCH_COMMIT_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Index.BatchCommitSize = n
		}
	}
	if v := os.Getenv("WAKERU_INDEX_LANGUAGES"); v != "" {
		config.Index.Languages = splitCSV(v)
	}
	if v := os.Getenv("WAKERU_INDEX_DEFAULT_LANGUAGE"); v != "" {
		config.Index.DefaultLanguage = v
	}

	if v := os.Getenv("WAKERU_SEARCH_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Search.DefaultLimit = n
		}
	}
	if v := os.Getenv("WAKERU_SEARCH_MAX_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Search.MaxLimit = n
		}
	}

	if v := os.Getenv("WAKERU_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("WAKERU_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	if v := os.Getenv("WAKERU_LOG_OUTPUT"); v != "" {
		config.Logging.Output = splitCSV(v)
	}

	if v := os.Getenv("WAKERU_SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			config.Server.Port = p
		}
	}
	if v := os.Getenv("WAKERU_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("WAKERU_API_BASE_URL"); v != "" {
		config.Server.BaseURL = v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IndexPathForLanguage returns the on-disk directory a language's
// index lives under: <data_dir>/<language code>.
func (c *Config) IndexPathForLanguage(languageCode string) string {
	return filepath.Join(c.Index.DataDir, languageCode)
}

// Validate checks Config for internal consistency, returning the
// first violated rule in this priority order: languages must be
// non-empty; default_language must be a member of languages; the
// search limits and index writer/batch sizes must be sane; and the
// dictionary cache directory, if set, must be usable.
//
// Validate only checks structural consistency of the configured
// language codes (non-empty, default present in the list); whether
// each code actually names a supported language is decided later by
// wakeru.ParseLanguage when the service initializes.
func (c *Config) Validate() *wakeruerrors.ConfigError {
	if len(c.Index.Languages) == 0 {
		return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigEmptyLanguages}
	}

	found := false
	for _, l := range c.Index.Languages {
		if l == c.Index.DefaultLanguage {
			found = true
			break
		}
	}
	if !found {
		return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigDefaultLanguageNotInLanguages, Language: c.Index.DefaultLanguage}
	}

	if c.Search.DefaultLimit < 1 {
		return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigInvalidSearchDefaultLimit, Actual: c.Search.DefaultLimit}
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigInvalidSearchMaxLimit, DefaultLimit: c.Search.DefaultLimit, MaxLimit: c.Search.MaxLimit}
	}

	const minWriterMemory, maxWriterMemory = 1_000_000, 1_000_000_000
	if c.Index.WriterMemoryBytes < minWriterMemory || c.Index.WriterMemoryBytes > maxWriterMemory {
		return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigInvalidWriterMemoryBytes, Min: minWriterMemory, Max: maxWriterMemory, Actual: int64(c.Index.WriterMemoryBytes)}
	}
	if c.Index.BatchCommitSize < 1 {
		return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigInvalidBatchCommitSize, Actual: c.Index.BatchCommitSize}
	}

	if c.Dictionary.CacheDir != "" {
		info, statErr := os.Stat(c.Dictionary.CacheDir)
		switch {
		case statErr == nil && !info.IsDir():
			return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigInvalidDictionaryCacheDir, Path: c.Dictionary.CacheDir}
		case os.IsNotExist(statErr):
			if mkErr := os.MkdirAll(c.Dictionary.CacheDir, 0o755); mkErr != nil {
				return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigDictionaryCacheDirCreationFailed, Path: c.Dictionary.CacheDir, Cause: mkErr}
			}
		case statErr != nil:
			return &wakeruerrors.ConfigError{Kind: wakeruerrors.ConfigInvalidDictionaryCacheDir, Path: c.Dictionary.CacheDir, Cause: statErr}
		}
	}

	return nil
}
