package tweets

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/eclogic/waybacktweets/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(ts time.Time, status string) models.TweetRecord {
	return models.TweetRecord{
		Timestamp:   models.ArchiveTime{Time: ts, Valid: true},
		OriginalURL: "https://twitter.com/a/status/1",
		ArchivedURL: "https://web.archive.org/web/x",
		StatusCode:  status,
	}
}

func invalidRow(status string) models.TweetRecord {
	return models.TweetRecord{
		OriginalURL: "https://twitter.com/a/status/bad",
		ArchivedURL: "https://web.archive.org/web/bad",
		StatusCode:  status,
	}
}

func criteria(start, end time.Time, codes ...string) models.Criteria {
	return models.Criteria{
		Handle:      "someone",
		StartDate:   start,
		EndDate:     end,
		StatusCodes: codes,
	}
}

// TestFilterByStatusCode covers the 3-row status scenario: two 200s survive
// in original order
func TestFilterByStatusCode(t *testing.T) {
	table := []models.TweetRecord{
		row(day(2024, 6, 1), "200"),
		row(day(2024, 6, 2), "404"),
		row(day(2024, 6, 3), "200"),
	}

	filtered, err := Filter(table, criteria(day(2024, 6, 1), day(2024, 6, 30), "200"))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if len(filtered) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(filtered))
	}
	for i, r := range filtered {
		if r.StatusCode != "200" {
			t.Errorf("row %d status = %q, want 200", i, r.StatusCode)
		}
	}
	// Original relative order preserved
	if !filtered[0].Timestamp.Time.Before(filtered[1].Timestamp.Time) {
		t.Error("rows were reordered")
	}
}

// TestFilterEmptyStatusSet verifies an empty set means no status filtering
func TestFilterEmptyStatusSet(t *testing.T) {
	table := []models.TweetRecord{
		row(day(2024, 6, 1), "200"),
		row(day(2024, 6, 2), "404"),
		row(day(2024, 6, 3), "500"),
	}

	filtered, err := Filter(table, criteria(day(2024, 6, 1), day(2024, 6, 30)))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(filtered) != 3 {
		t.Errorf("expected all 3 rows, got %d", len(filtered))
	}
}

// TestFilterInvalidRange verifies end-before-start is rejected before any
// row is touched
func TestFilterInvalidRange(t *testing.T) {
	table := []models.TweetRecord{row(day(2024, 5, 15), "200")}

	filtered, err := Filter(table, criteria(day(2024, 6, 1), day(2024, 5, 1)))
	if err == nil {
		t.Fatal("expected InvalidInputError, got nil")
	}
	if filtered != nil {
		t.Error("no table should be produced on invalid range")
	}

	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
	if inputErr.Reason != "end before start" {
		t.Errorf("reason = %q, want %q", inputErr.Reason, "end before start")
	}
}

// TestFilterEmptyHandle verifies standalone criteria validation
func TestFilterEmptyHandle(t *testing.T) {
	c := criteria(day(2024, 6, 1), day(2024, 6, 30))
	c.Handle = "   "

	_, err := Filter(nil, c)
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InvalidInputError, got %v", err)
	}
	if inputErr.Reason != "empty handle" {
		t.Errorf("reason = %q, want %q", inputErr.Reason, "empty handle")
	}
}

// TestFilterDateBoundaries verifies inclusive bounds: exactly start or end
// (at midnight) is in, one day outside is out
func TestFilterDateBoundaries(t *testing.T) {
	start := day(2024, 6, 1)
	end := day(2024, 6, 30)

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"exactly start", start, true},
		{"exactly end", end, true},
		{"late on end date", time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC), true},
		{"day before start", day(2024, 5, 31), false},
		{"day after end", day(2024, 7, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := Filter([]models.TweetRecord{row(tt.ts, "200")}, criteria(start, end))
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			got := len(filtered) == 1
			if got != tt.want {
				t.Errorf("timestamp %v included = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

// TestFilterExcludesInvalidTimestamps verifies rows with unparseable
// timestamps never match a date range
func TestFilterExcludesInvalidTimestamps(t *testing.T) {
	table := []models.TweetRecord{
		invalidRow("200"),
		row(day(2024, 6, 15), "200"),
		invalidRow("200"),
	}

	filtered, err := Filter(table, criteria(day(2024, 6, 1), day(2024, 6, 30)))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 row, got %d", len(filtered))
	}
	if !filtered[0].Timestamp.Valid {
		t.Error("surviving row should have a valid timestamp")
	}
}

// TestFilterEmptyTable verifies an empty input is not an error
func TestFilterEmptyTable(t *testing.T) {
	filtered, err := Filter([]models.TweetRecord{}, criteria(day(2024, 6, 1), day(2024, 6, 30)))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(filtered) != 0 {
		t.Errorf("expected empty output, got %d rows", len(filtered))
	}
}

// TestFilterIdempotent verifies re-filtering the output with the same
// criteria yields an identical table
func TestFilterIdempotent(t *testing.T) {
	table := []models.TweetRecord{
		row(day(2024, 6, 1), "200"),
		row(day(2024, 6, 5), "404"),
		invalidRow("200"),
		row(day(2024, 7, 9), "200"),
	}
	c := criteria(day(2024, 6, 1), day(2024, 6, 30), "200", "404")

	once, err := Filter(table, c)
	if err != nil {
		t.Fatalf("first Filter failed: %v", err)
	}
	twice, err := Filter(once, c)
	if err != nil {
		t.Fatalf("second Filter failed: %v", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
	if len(twice) > len(table) {
		t.Error("filter increased row count")
	}
}

// TestFilterDoesNotMutateInput verifies the input table is left intact
func TestFilterDoesNotMutateInput(t *testing.T) {
	table := []models.TweetRecord{
		row(day(2024, 6, 1), "200"),
		row(day(2024, 1, 1), "404"),
	}
	before := make([]models.TweetRecord, len(table))
	copy(before, table)

	if _, err := Filter(table, criteria(day(2024, 6, 1), day(2024, 6, 30))); err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if !reflect.DeepEqual(table, before) {
		t.Error("input table was mutated")
	}
}
