package models

// Capture represents one Wayback Machine CDX capture of a tweet URL
type Capture struct {
	URL        string  // original tweet URL as archived
	Timestamp  string  // 14-digit format: YYYYMMDDhhmmss
	StatusCode *int    // nullable - some records don't have status
	MimeType   *string // nullable - some records don't have mime type
}

// ParsedTweet is one capture parsed into the requested fields.
// Keys are exactly the field names that were requested from the parser.
type ParsedTweet map[string]string

// Requested parser field names
const (
	FieldArchivedTimestamp = "archived_timestamp"
	FieldOriginalTweetURL  = "original_tweet_url"
	FieldArchivedTweetURL  = "archived_tweet_url"
	FieldArchivedStatus    = "archived_statuscode"
)

// DefaultFields returns the field names the viewer requests from the parser
func DefaultFields() []string {
	return []string{
		FieldArchivedTimestamp,
		FieldOriginalTweetURL,
		FieldArchivedTweetURL,
		FieldArchivedStatus,
	}
}
