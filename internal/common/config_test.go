package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
)

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		c := NewDefaultConfig()
		c.Index.Languages = []string{"ja", "en"}
		c.Index.DefaultLanguage = "ja"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantOK  bool
		wantErr wakeruerrors.ConfigErrorKind
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
			wantOK: true,
		},
		{
			name: "empty languages",
			mutate: func(c *Config) {
				c.Index.Languages = nil
			},
			wantErr: wakeruerrors.ConfigEmptyLanguages,
		},
		{
			name: "default language not in languages",
			mutate: func(c *Config) {
				c.Index.DefaultLanguage = "fr"
			},
			wantErr: wakeruerrors.ConfigDefaultLanguageNotInLanguages,
		},
		{
			name: "search default limit below one",
			mutate: func(c *Config) {
				c.Search.DefaultLimit = 0
			},
			wantErr: wakeruerrors.ConfigInvalidSearchDefaultLimit,
		},
		{
			name: "search max limit below default limit",
			mutate: func(c *Config) {
				c.Search.DefaultLimit = 50
				c.Search.MaxLimit = 10
			},
			wantErr: wakeruerrors.ConfigInvalidSearchMaxLimit,
		},
		{
			name: "writer memory bytes below minimum",
			mutate: func(c *Config) {
				c.Index.WriterMemoryBytes = 1
			},
			wantErr: wakeruerrors.ConfigInvalidWriterMemoryBytes,
		},
		{
			name: "writer memory bytes above maximum",
			mutate: func(c *Config) {
				c.Index.WriterMemoryBytes = 5_000_000_000
			},
			wantErr: wakeruerrors.ConfigInvalidWriterMemoryBytes,
		},
		{
			name: "writer memory bytes one below minimum boundary",
			mutate: func(c *Config) {
				c.Index.WriterMemoryBytes = 999_999
			},
			wantErr: wakeruerrors.ConfigInvalidWriterMemoryBytes,
		},
		{
			name: "writer memory bytes one above maximum boundary",
			mutate: func(c *Config) {
				c.Index.WriterMemoryBytes = 1_000_000_001
			},
			wantErr: wakeruerrors.ConfigInvalidWriterMemoryBytes,
		},
		{
			name: "writer memory bytes at minimum boundary passes",
			mutate: func(c *Config) {
				c.Index.WriterMemoryBytes = 1_000_000
			},
			wantOK: true,
		},
		{
			name: "writer memory bytes at maximum boundary passes",
			mutate: func(c *Config) {
				c.Index.WriterMemoryBytes = 1_000_000_000
			},
			wantOK: true,
		},
		{
			name: "batch commit size below one",
			mutate: func(c *Config) {
				c.Index.BatchCommitSize = 0
			},
			wantErr: wakeruerrors.ConfigInvalidBatchCommitSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantOK {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, tt.wantErr, err.Kind)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("WAKERU_PRESET_DICT", "unidic-cwj")
	t.Setenv("WAKERU_INDEX_LANGUAGES", "ja, en")
	t.Setenv("WAKERU_SERVER_PORT", "9090")

	c := NewDefaultConfig()
	applyEnvOverrides(c)

	assert.Equal(t, "unidic-cwj", c.Dictionary.Preset)
	assert.Equal(t, []string{"ja", "en"}, c.Index.Languages)
	assert.Equal(t, 9090, c.Server.Port)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"ja", "en"}, splitCSV("ja, en"))
	assert.Equal(t, []string{"ja"}, splitCSV("ja"))
	assert.Equal(t, []string{}, splitCSV(""))
}

func TestIndexPathForLanguage(t *testing.T) {
	c := NewDefaultConfig()
	c.Index.DataDir = "/tmp/wakeru-data"
	assert.Equal(t, "/tmp/wakeru-data/ja", c.IndexPathForLanguage("ja"))
}
