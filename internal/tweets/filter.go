package tweets

import (
	"strings"

	"github.com/eclogic/waybacktweets/internal/models"
)

// ValidateCriteria rejects unusable criteria before any row is inspected.
// No partial filtering ever happens on invalid input.
func ValidateCriteria(c models.Criteria) error {
	if strings.TrimSpace(c.Handle) == "" {
		return &InvalidInputError{Reason: "empty handle"}
	}
	if c.EndDate.Before(c.StartDate) {
		return &InvalidInputError{Reason: "end before start"}
	}
	return nil
}

// Filter applies the date range and status code criteria to a record table.
// The result is a fresh slice preserving the relative order of surviving
// rows; the input table is never mutated.
//
// Rows with an unparseable timestamp are always excluded: an unknown date
// can't be proven to fall within the range. An empty status set means no
// status filtering at all.
func Filter(table []models.TweetRecord, criteria models.Criteria) ([]models.TweetRecord, error) {
	if err := ValidateCriteria(criteria); err != nil {
		return nil, err
	}

	statusSet := make(map[string]struct{}, len(criteria.StatusCodes))
	for _, code := range criteria.StatusCodes {
		statusSet[code] = struct{}{}
	}

	filtered := make([]models.TweetRecord, 0, len(table))
	for _, row := range table {
		if !row.Timestamp.Valid {
			continue
		}
		date := row.Timestamp.Date()
		if date.Before(criteria.StartDate) || date.After(criteria.EndDate) {
			continue
		}
		if len(statusSet) > 0 {
			if _, ok := statusSet[row.StatusCode]; !ok {
				continue
			}
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}
