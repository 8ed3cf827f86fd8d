package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegion(t *testing.T, dir, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".yml"), []byte(content), 0644))
}

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	writeRegion(t, tempDir, "kyiv", `
name: "Kyiv"
country: "Ukraine"
lat: 50.45
lng: 30.52
feeds:
  - url: "https://example.com/war.xml"
    category: "war"
  - url: " https://example.com/politics.xml "
`)

	configCache := NewConfigCache(tempDir)
	require.NoError(t, configCache.Run())
	assert.Equal(t, 1, configCache.GetConfigCount())

	regionConfig, err := configCache.GetConfig("kyiv")
	require.NoError(t, err)

	assert.Equal(t, "kyiv", regionConfig.ID)
	assert.Equal(t, "Kyiv", regionConfig.Name)
	assert.Equal(t, "Ukraine", regionConfig.Country)
	assert.Equal(t, 50.45, regionConfig.Lat)
	assert.Equal(t, 30.52, regionConfig.Lng)
	require.Len(t, regionConfig.Feeds, 2)
	assert.Equal(t, "war", regionConfig.Feeds[0].Category)
	assert.Equal(t, "https://example.com/politics.xml", regionConfig.Feeds[1].URL, "URL should be trimmed")
}

func TestConfigCacheRegionWithoutFeeds(t *testing.T) {
	tempDir := t.TempDir()
	writeRegion(t, tempDir, "empty", `
name: "Nowhere"
country: "Atlantis"
`)

	configCache := NewConfigCache(tempDir)
	require.NoError(t, configCache.Run())

	regionConfig, err := configCache.GetConfig("empty")
	require.NoError(t, err)
	assert.Empty(t, regionConfig.Feeds)
}

func TestConfigCacheInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing name", "country: X\n", "region name is required"},
		{"latitude out of range", "name: A\nlat: 91\n", "latitude"},
		{"longitude out of range", "name: A\nlng: -181\n", "longitude"},
		{"feed without URL", "name: A\nfeeds:\n  - category: war\n", "must have a URL"},
		{"feed with relative URL", "name: A\nfeeds:\n  - url: /feed.xml\n", "invalid URL"},
		{"feed with ftp URL", "name: A\nfeeds:\n  - url: ftp://example.com/feed\n", "invalid URL"},
		{"broken YAML", "name: [unclosed\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			writeRegion(t, tempDir, "bad", tt.content)

			err := NewConfigCache(tempDir).Run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigCacheEmptyDirectory(t *testing.T) {
	configCache := NewConfigCache(t.TempDir())
	require.NoError(t, configCache.Run())
	assert.Equal(t, 0, configCache.GetConfigCount())
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, configCache.Run(), "missing directory should be ignored")
}

func TestConfigCacheGetConfigsSorted(t *testing.T) {
	tempDir := t.TempDir()
	writeRegion(t, tempDir, "lviv", "name: Lviv\n")
	writeRegion(t, tempDir, "berlin", "name: Berlin\n")
	writeRegion(t, tempDir, "kyiv", "name: Kyiv\n")

	configCache := NewConfigCache(tempDir)
	require.NoError(t, configCache.Run())

	configs := configCache.GetConfigs()
	require.Len(t, configs, 3)
	ids := make([]string, 0, len(configs))
	for _, c := range configs {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"berlin", "kyiv", "lviv"}, ids)
}

func TestConfigCacheGetConfigEmptyCache(t *testing.T) {
	configCache := NewConfigCache(t.TempDir())

	_, err := configCache.GetConfig("nonexistent")
	assert.Error(t, err)
}

func TestConfigCacheValidateConfigNil(t *testing.T) {
	configCache := NewConfigCache(t.TempDir())
	assert.Error(t, configCache.validateConfig(nil))
}
