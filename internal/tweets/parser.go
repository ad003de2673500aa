package tweets

import (
	"fmt"

	"github.com/eclogic/waybacktweets/internal/models"
)

// ParseCaptures converts raw CDX captures into parsed tweet records with the
// requested field names as keys. Output order matches input order, one record
// per capture.
func ParseCaptures(captures []models.Capture, handle string, fields []string) []models.ParsedTweet {
	parsed := make([]models.ParsedTweet, len(captures))
	for i, c := range captures {
		record := make(models.ParsedTweet, len(fields))
		for _, field := range fields {
			switch field {
			case models.FieldArchivedTimestamp:
				record[field] = c.Timestamp
			case models.FieldOriginalTweetURL:
				record[field] = c.URL
			case models.FieldArchivedTweetURL:
				record[field] = ArchivedURL(c.Timestamp, c.URL)
			case models.FieldArchivedStatus:
				if c.StatusCode != nil {
					record[field] = fmt.Sprintf("%d", *c.StatusCode)
				} else {
					record[field] = ""
				}
			}
		}
		parsed[i] = record
	}
	return parsed
}

// ArchivedURL builds the Wayback Machine replay URL for a capture
func ArchivedURL(timestamp, original string) string {
	return fmt.Sprintf("https://web.archive.org/web/%s/%s", timestamp, original)
}
