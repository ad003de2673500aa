package models

import "time"

// QueryHistoryEntry records a completed query for the history browser.
// The pipeline never reads history back; every query fetches fresh.
type QueryHistoryEntry struct {
	ID           int64
	Handle       string
	StartDate    string // "2006-01-02"
	EndDate      string // "2006-01-02"
	StatusCodes  string // comma-joined, empty when no status filter
	CaptureCount int    // captures returned by the archive
	MatchCount   int    // rows that survived filtering
	ExportFile   string // empty when nothing was exported
	QueriedAt    time.Time
}
