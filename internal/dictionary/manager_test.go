package dictionary

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wakeruerrors "github.com/ternarybob/wakeru/internal/errors"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Preset
		wantErr bool
	}{
		{"ipadic lowercase", "ipadic", Ipadic, false},
		{"ipadic mixed case", "IpaDic", Ipadic, false},
		{"unidic-cwj", "unidic-cwj", UnidicCwj, false},
		{"unidic-csj", "unidic-csj", UnidicCsj, false},
		{"unknown", "sudachi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePreset(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadIpadicPresetCachesDict(t *testing.T) {
	mgr := WithCacheDir(Ipadic, t.TempDir())

	d1, err := mgr.Load()
	require.Nil(t, err)
	require.NotNil(t, d1)
	assert.NotNil(t, d1.Dict())

	// A second Load call must return the exact same memoized result
	// instead of reloading.
	d2, err2 := mgr.Load()
	require.Nil(t, err2)
	assert.Same(t, d1, d2)
}

func TestLoadUnidicPresetWithoutLocalPathFails(t *testing.T) {
	mgr := WithCacheDir(UnidicCwj, t.TempDir())

	d, err := mgr.Load()
	assert.Nil(t, d)
	require.NotNil(t, err)
	assert.Equal(t, wakeruerrors.DictionaryNotFound, err.Kind)
}

func TestFromLocalPathRejectsMissingFile(t *testing.T) {
	_, err := FromLocalPath(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	assert.Error(t, err)
}

func TestFromLocalPathRejectsDirectory(t *testing.T) {
	_, err := FromLocalPath(t.TempDir())
	assert.Error(t, err)
}

func TestCacheDirReflectsConstructor(t *testing.T) {
	dir := t.TempDir()
	mgr := WithCacheDir(Ipadic, dir)
	assert.Equal(t, dir, mgr.CacheDir())
}
