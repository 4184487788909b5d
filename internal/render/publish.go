// Package render turns the ranked entry set into the published digest
// artifacts: a static HTML page and a CSV export. Artifacts are replaced
// atomically; a failed run leaves the previous digest in place.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"navalwatch/internal/digest"
	"navalwatch/internal/logger"
)

type Publisher struct {
	OutputDir string
	HTMLFile  string
	CSVFile   string
}

// Publish renders both artifacts fully in memory first, then writes each
// through a temp file and a rename. Old versions stay live until the new
// ones are completely written; there are no partial overwrites.
func (p *Publisher) Publish(entries []digest.Entry, generatedAt time.Time, windowDays int) error {
	var page, export bytes.Buffer

	if err := WriteHTML(&page, entries, generatedAt, windowDays, p.CSVFile); err != nil {
		return fmt.Errorf("render html digest: %w", err)
	}
	if err := WriteCSV(&export, entries); err != nil {
		return fmt.Errorf("render csv export: %w", err)
	}

	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", p.OutputDir, err)
	}

	if err := p.writeAtomic(p.HTMLFile, page.Bytes()); err != nil {
		return err
	}
	if err := p.writeAtomic(p.CSVFile, export.Bytes()); err != nil {
		return err
	}

	logger.Info("digest published",
		"dir", p.OutputDir, "html", p.HTMLFile, "csv", p.CSVFile, "entries", len(entries))
	return nil
}

func (p *Publisher) writeAtomic(name string, data []byte) error {
	final := filepath.Join(p.OutputDir, name)
	tmp := final + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", final, err)
	}
	return nil
}
