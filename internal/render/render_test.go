package render

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navalwatch/internal/digest"
)

func sampleEntries() []digest.Entry {
	return []digest.Entry{
		{
			Title:     "AI sonar enters sea trials",
			Link:      "https://example.com/ai-sonar",
			Published: time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC),
			Summary:   "Trials began this week.",
			Source:    "Naval Technology",
			Score:     9.5,
		},
		{
			Title:     "Swarm exercise concludes",
			Link:      "https://example.com/swarm",
			Published: time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC),
			Summary:   "",
			Source:    "C4ISRNet",
			Score:     4,
		},
	}
}

func TestWriteCSVColumnContract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleEntries()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"title", "link", "published_at", "source", "score"}, records[0])
	assert.Equal(t, []string{
		"AI sonar enters sea trials",
		"https://example.com/ai-sonar",
		"2026-08-24T14:00:00Z",
		"Naval Technology",
		"9.50",
	}, records[1])
}

func TestWriteHTMLContainsEntries(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)
	require.NoError(t, WriteHTML(&buf, sampleEntries(), now, 7, "digest.csv"))

	page := buf.String()
	assert.Contains(t, page, "AI sonar enters sea trials")
	assert.Contains(t, page, `href="https://example.com/ai-sonar"`)
	assert.Contains(t, page, "2026-08-24")
	assert.Contains(t, page, "9.50")
	assert.Contains(t, page, "2026-08-29 06:00 UTC")
	assert.Contains(t, page, `href="digest.csv"`)
}

func TestWriteHTMLEscapesMarkup(t *testing.T) {
	entries := []digest.Entry{{
		Title:     `<script>alert("x")</script>`,
		Link:      "https://example.com/a",
		Published: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Source:    "s",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, entries, time.Now(), 7, "digest.csv"))
	assert.NotContains(t, buf.String(), `<script>alert`)
}

func TestPublishWritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	p := &Publisher{OutputDir: dir, HTMLFile: "index.html", CSVFile: "digest.csv"}

	require.NoError(t, p.Publish(sampleEntries(), time.Now(), 7))

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Swarm exercise concludes")

	export, err := os.ReadFile(filepath.Join(dir, "digest.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(export), "title,link,published_at,source,score"))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestPublishReplacesPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	p := &Publisher{OutputDir: dir, HTMLFile: "index.html", CSVFile: "digest.csv"}

	require.NoError(t, p.Publish(sampleEntries(), time.Now(), 7))
	first, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)

	updated := sampleEntries()[:1]
	require.NoError(t, p.Publish(updated, time.Now(), 7))
	second, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)

	assert.NotEqual(t, string(first), string(second))
	assert.NotContains(t, string(second), "Swarm exercise concludes")
}

func TestPublishFailureKeepsPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	p := &Publisher{OutputDir: dir, HTMLFile: "index.html", CSVFile: "digest.csv"}

	require.NoError(t, p.Publish(sampleEntries(), time.Now(), 7))

	// Point the publisher at an unusable output dir: the rename fails and
	// the original artifacts stay untouched.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("a file, not a dir"), 0o644))
	broken := &Publisher{OutputDir: blocked, HTMLFile: "index.html", CSVFile: "digest.csv"}
	assert.Error(t, broken.Publish(sampleEntries(), time.Now(), 7))

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "AI sonar enters sea trials")
}
