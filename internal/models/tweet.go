package models

import "time"

// ArchiveTime is the timestamp column of a tweet record. Valid is false when
// the archive timestamp could not be parsed; such rows are kept in the table
// but never match a date range.
type ArchiveTime struct {
	Time  time.Time
	Valid bool
}

// Date truncates the timestamp to midnight for date-range comparison
func (t ArchiveTime) Date() time.Time {
	y, m, d := t.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TweetRecord is one row of the record table after renaming and type
// conversion. Every row has all four columns.
type TweetRecord struct {
	Timestamp   ArchiveTime
	OriginalURL string
	ArchivedURL string
	StatusCode  string
}

// Criteria holds the user-supplied query inputs
type Criteria struct {
	Handle      string
	StartDate   time.Time // date only, midnight UTC
	EndDate     time.Time // date only, midnight UTC
	StatusCodes []string  // empty means no status filtering
}

// StatusCodeOptions is the closed set offered by the status filter
var StatusCodeOptions = []string{"200", "404", "500", "403"}
