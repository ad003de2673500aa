package tweets

import (
	"github.com/eclogic/waybacktweets/internal/models"
)

// ArchiveClient retrieves raw archived captures for an account handle
type ArchiveClient interface {
	FetchCaptures(handle string) ([]models.Capture, error)
}

// Outcome distinguishes the three non-error results of a query
type Outcome int

const (
	// OutcomeOK means captures were found and some survived filtering
	OutcomeOK Outcome = iota
	// OutcomeNoCaptures means the archive returned nothing for the handle
	OutcomeNoCaptures
	// OutcomeNoMatches means captures existed but none survived filtering
	OutcomeNoMatches
)

// Result is a fully successful query invocation. Created fresh per query,
// never reused.
type Result struct {
	Outcome      Outcome
	Table        []models.TweetRecord // filtered table; empty on NoMatches
	CSV          []byte               // nil unless Outcome is OK
	Filename     string               // suggested export filename
	CaptureCount int                  // captures returned by the archive
}

// Run executes one query invocation end to end: fetch, parse, build,
// filter, encode. Any stage failure aborts the remaining stages and is
// returned as a single typed error; a Result is only returned when the
// whole pipeline succeeded.
func Run(client ArchiveClient, criteria models.Criteria) (*Result, error) {
	if err := ValidateCriteria(criteria); err != nil {
		return nil, err
	}

	captures, err := client.FetchCaptures(criteria.Handle)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	if len(captures) == 0 {
		return &Result{
			Outcome:  OutcomeNoCaptures,
			Filename: ExportFilename(criteria.Handle),
		}, nil
	}

	parsed := ParseCaptures(captures, criteria.Handle, models.DefaultFields())

	table, err := BuildTable(parsed)
	if err != nil {
		return nil, err
	}

	filtered, err := Filter(table, criteria)
	if err != nil {
		return nil, err
	}
	if len(filtered) == 0 {
		return &Result{
			Outcome:      OutcomeNoMatches,
			Table:        filtered,
			Filename:     ExportFilename(criteria.Handle),
			CaptureCount: len(captures),
		}, nil
	}

	data, err := EncodeCSV(filtered)
	if err != nil {
		return nil, err
	}

	return &Result{
		Outcome:      OutcomeOK,
		Table:        filtered,
		CSV:          data,
		Filename:     ExportFilename(criteria.Handle),
		CaptureCount: len(captures),
	}, nil
}
