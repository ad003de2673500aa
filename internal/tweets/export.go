package tweets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/eclogic/waybacktweets/internal/models"
)

// csvTimeLayout is how timestamps are rendered in exports
const csvTimeLayout = "2006-01-02 15:04:05"

// csvHeader names the output columns in their fixed order
var csvHeader = []string{"timestamp", "original_url", "archived_url", "statuscode"}

// ExportFilename suggests the download filename for a handle's export
func ExportFilename(handle string) string {
	return fmt.Sprintf("%s_archived_tweets.csv", handle)
}

// EncodeCSV serializes a record table as CSV bytes. The same table always
// yields byte-identical output: fixed header, input row order, one timestamp
// layout. Rows with an unparseable timestamp get an empty timestamp cell.
func EncodeCSV(table []models.TweetRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range table {
		ts := ""
		if row.Timestamp.Valid {
			ts = row.Timestamp.Time.Format(csvTimeLayout)
		}
		if err := w.Write([]string{ts, row.OriginalURL, row.ArchivedURL, row.StatusCode}); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses exported CSV bytes back into a record table.
// Used by the history browser to re-open past exports.
func DecodeCSV(data []byte) ([]models.TweetRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV: missing header")
	}

	header := rows[0]
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("unexpected CSV header: %v", header)
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], name)
		}
	}

	table := make([]models.TweetRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := models.TweetRecord{
			OriginalURL: row[1],
			ArchivedURL: row[2],
			StatusCode:  row[3],
		}
		if row[0] != "" {
			ts, err := time.Parse(csvTimeLayout, row[0])
			if err != nil {
				return nil, fmt.Errorf("bad timestamp %q: %w", row[0], err)
			}
			record.Timestamp = models.ArchiveTime{Time: ts, Valid: true}
		}
		table = append(table, record)
	}
	return table, nil
}
