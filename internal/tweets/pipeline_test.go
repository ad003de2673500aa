package tweets

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/eclogic/waybacktweets/internal/models"
)

// fakeClient serves canned captures or a canned error
type fakeClient struct {
	captures []models.Capture
	err      error
}

func (f *fakeClient) FetchCaptures(handle string) ([]models.Capture, error) {
	return f.captures, f.err
}

func capture(ts string, status int) models.Capture {
	return models.Capture{
		Timestamp:  ts,
		URL:        "https://twitter.com/someone/status/" + ts,
		StatusCode: &status,
	}
}

func juneCriteria() models.Criteria {
	return models.Criteria{
		Handle:    "someone",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

// TestRunOK verifies the full fetch -> parse -> build -> filter -> encode path
func TestRunOK(t *testing.T) {
	client := &fakeClient{captures: []models.Capture{
		capture("20240601120000", 200),
		capture("20240615130000", 404),
		capture("20240901140000", 200), // outside range
	}}

	result, err := Run(client, juneCriteria())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Outcome != OutcomeOK {
		t.Fatalf("outcome = %v, want OutcomeOK", result.Outcome)
	}
	if len(result.Table) != 2 {
		t.Errorf("table has %d rows, want 2", len(result.Table))
	}
	if result.CaptureCount != 3 {
		t.Errorf("capture count = %d, want 3", result.CaptureCount)
	}
	if result.Filename != "someone_archived_tweets.csv" {
		t.Errorf("filename = %q", result.Filename)
	}
	if len(result.CSV) == 0 {
		t.Error("expected CSV bytes on OK outcome")
	}

	// Exported bytes describe exactly the filtered table
	decoded, err := DecodeCSV(result.CSV)
	if err != nil {
		t.Fatalf("DecodeCSV failed: %v", err)
	}
	if len(decoded) != len(result.Table) {
		t.Errorf("CSV has %d rows, table has %d", len(decoded), len(result.Table))
	}
}

// TestRunNoCaptures covers the empty-archive case: a notice, not an error
func TestRunNoCaptures(t *testing.T) {
	client := &fakeClient{captures: nil}

	result, err := Run(client, juneCriteria())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != OutcomeNoCaptures {
		t.Errorf("outcome = %v, want OutcomeNoCaptures", result.Outcome)
	}
	if result.CSV != nil {
		t.Error("no download should be offered without captures")
	}
}

// TestRunNoMatches covers captures that all fall outside the range: the
// table is shown empty and no download is offered
func TestRunNoMatches(t *testing.T) {
	client := &fakeClient{captures: []models.Capture{
		capture("20230101120000", 200),
		capture("20230102120000", 200),
		capture("20230103120000", 200),
		capture("20230104120000", 200),
		capture("20230105120000", 200),
	}}

	result, err := Run(client, juneCriteria())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Outcome != OutcomeNoMatches {
		t.Fatalf("outcome = %v, want OutcomeNoMatches", result.Outcome)
	}
	if result.Table == nil || len(result.Table) != 0 {
		t.Errorf("expected an empty (non-nil) table, got %v", result.Table)
	}
	if result.CSV != nil {
		t.Error("no download should be offered when nothing matched")
	}
	if result.CaptureCount != 5 {
		t.Errorf("capture count = %d, want 5", result.CaptureCount)
	}
}

// TestRunRetrievalError verifies client failures wrap into RetrievalError
// and abort the pipeline
func TestRunRetrievalError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	client := &fakeClient{err: cause}

	result, err := Run(client, juneCriteria())
	if result != nil {
		t.Error("no result should be returned on retrieval failure")
	}

	var retrievalErr *RetrievalError
	if !errors.As(err, &retrievalErr) {
		t.Fatalf("expected *RetrievalError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("underlying cause should be wrapped")
	}
}

// TestRunInvalidCriteria verifies validation happens before any fetch
func TestRunInvalidCriteria(t *testing.T) {
	// A client that fails the test if it is ever called
	client := clientFunc(func(handle string) ([]models.Capture, error) {
		t.Error("FetchCaptures called despite invalid criteria")
		return nil, nil
	})

	c := juneCriteria()
	c.StartDate, c.EndDate = c.EndDate, c.StartDate

	_, err := Run(client, c)
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InvalidInputError, got %v", err)
	}
}

type clientFunc func(handle string) ([]models.Capture, error)

func (f clientFunc) FetchCaptures(handle string) ([]models.Capture, error) {
	return f(handle)
}
