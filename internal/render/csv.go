package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"navalwatch/internal/digest"
)

// WriteCSV emits the export with the stable column contract:
// title, link, published_at, source, score.
func WriteCSV(w io.Writer, entries []digest.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"title", "link", "published_at", "source", "score"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Title,
			e.Link,
			e.Published.UTC().Format(time.RFC3339),
			e.Source,
			fmt.Sprintf("%.2f", e.Score),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
