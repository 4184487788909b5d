package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "feeds: []\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.DaysWindow)
	assert.Equal(t, 300, cfg.MaxSummaryChars)
	assert.Equal(t, "docs", cfg.OutputDir)
	assert.Equal(t, "index.html", cfg.HTMLFile)
	assert.Equal(t, "digest.csv", cfg.CSVFile)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.FetchConcurrency)
}

func TestLoadFeedForms(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - https://www.naval-technology.com/feed/
  - name: C4ISRNet
    url: https://www.c4isrnet.com/rss/
    weight: 1.15
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Feeds, 2)

	// bare string form: name derived from the host, weight defaulted
	assert.Equal(t, "naval-technology.com", cfg.Feeds[0].Name)
	assert.Equal(t, 1.0, cfg.Feeds[0].Weight)

	assert.Equal(t, "C4ISRNet", cfg.Feeds[1].Name)
	assert.Equal(t, 1.15, cfg.Feeds[1].Weight)
}

func TestLoadKeywordWeights(t *testing.T) {
	path := writeConfig(t, `
feeds: []
keyword_weights:
  ai: 2
  drone: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"ai": 2, "drone": 3}, cfg.KeywordWeights)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DAYS_WINDOW", "14")
	t.Setenv("GEN_ENDPOINT", "https://api.example.com/v1/news")
	t.Setenv("GEN_TOKEN", "tok")

	path := writeConfig(t, "feeds: []\ndays_window: 7\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.DaysWindow)
	assert.True(t, cfg.GenConfigured())
	assert.False(t, cfg.GenPartial())
}

func TestGenPartialIsNotFatal(t *testing.T) {
	t.Setenv("GEN_ENDPOINT", "https://api.example.com/v1/news")
	t.Setenv("GEN_TOKEN", "")

	path := writeConfig(t, "feeds: []\n")
	cfg, err := Load(path)
	require.NoError(t, err, "half-configured endpoint skips the source, never errors")

	assert.False(t, cfg.GenConfigured())
	assert.True(t, cfg.GenPartial())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"negative window", "feeds: []\ndays_window: -1\n"},
		{"empty feed url", "feeds:\n  - name: broken\n    url: \"\"\n"},
		{"negative feed weight", "feeds:\n  - url: https://x.com/feed\n    weight: -2\n"},
		{"negative keyword weight", "feeds: []\nkeyword_weights:\n  ai: -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
