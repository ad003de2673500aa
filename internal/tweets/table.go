package tweets

import (
	"time"

	"github.com/eclogic/waybacktweets/internal/models"
)

// archiveTimeLayout is the Wayback Machine 14-digit timestamp format
const archiveTimeLayout = "20060102150405"

// requiredFields must all be present in every parsed record
var requiredFields = []string{
	models.FieldArchivedTimestamp,
	models.FieldOriginalTweetURL,
	models.FieldArchivedTweetURL,
	models.FieldArchivedStatus,
}

// BuildTable converts parsed tweet records into the fixed-schema record
// table. Column renaming is total: every output row has all four columns.
// An unparseable timestamp becomes an invalid ArchiveTime rather than
// failing the build, so the row count always matches the input.
// A record missing a required key fails the whole build with a SchemaError.
func BuildTable(parsed []models.ParsedTweet) ([]models.TweetRecord, error) {
	table := make([]models.TweetRecord, len(parsed))
	for i, record := range parsed {
		for _, field := range requiredFields {
			if _, ok := record[field]; !ok {
				return nil, &SchemaError{Row: i, Field: field}
			}
		}

		table[i] = models.TweetRecord{
			Timestamp:   parseArchiveTime(record[models.FieldArchivedTimestamp]),
			OriginalURL: record[models.FieldOriginalTweetURL],
			ArchivedURL: record[models.FieldArchivedTweetURL],
			StatusCode:  record[models.FieldArchivedStatus],
		}
	}
	return table, nil
}

// parseArchiveTime parses a 14-digit archive timestamp.
// Malformed values yield an invalid ArchiveTime, not an error.
func parseArchiveTime(s string) models.ArchiveTime {
	ts, err := time.Parse(archiveTimeLayout, s)
	if err != nil {
		return models.ArchiveTime{}
	}
	return models.ArchiveTime{Time: ts, Valid: true}
}
