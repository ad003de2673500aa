package db

import (
	"path/filepath"
	"testing"

	"github.com/eclogic/waybacktweets/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// TestInsertAndGetHistory verifies the insert/read round trip
func TestInsertAndGetHistory(t *testing.T) {
	database := testDB(t)

	id, err := database.InsertQuery(models.QueryHistoryEntry{
		Handle:       "someone",
		StartDate:    "2024-06-01",
		EndDate:      "2024-06-30",
		StatusCodes:  "200,404",
		CaptureCount: 12,
		MatchCount:   7,
	})
	if err != nil {
		t.Fatalf("InsertQuery failed: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero row id")
	}

	entries, err := database.GetHistory(10)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Handle != "someone" || e.StartDate != "2024-06-01" || e.EndDate != "2024-06-30" {
		t.Errorf("entry fields wrong: %+v", e)
	}
	if e.StatusCodes != "200,404" {
		t.Errorf("status codes = %q", e.StatusCodes)
	}
	if e.CaptureCount != 12 || e.MatchCount != 7 {
		t.Errorf("counts wrong: %+v", e)
	}
	if e.ExportFile != "" {
		t.Errorf("export file should start empty, got %q", e.ExportFile)
	}
}

// TestSetExportFile verifies the export path update
func TestSetExportFile(t *testing.T) {
	database := testDB(t)

	id, err := database.InsertQuery(models.QueryHistoryEntry{
		Handle:    "someone",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
	})
	if err != nil {
		t.Fatalf("InsertQuery failed: %v", err)
	}

	if err := database.SetExportFile(id, "someone_archived_tweets.csv"); err != nil {
		t.Fatalf("SetExportFile failed: %v", err)
	}

	entries, err := database.GetHistory(1)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if entries[0].ExportFile != "someone_archived_tweets.csv" {
		t.Errorf("export file = %q", entries[0].ExportFile)
	}
}

// TestDeleteEntry verifies removal by id
func TestDeleteEntry(t *testing.T) {
	database := testDB(t)

	id, err := database.InsertQuery(models.QueryHistoryEntry{
		Handle:    "someone",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
	})
	if err != nil {
		t.Fatalf("InsertQuery failed: %v", err)
	}

	if err := database.DeleteEntry(id); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}

	entries, err := database.GetHistory(10)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}
}

// TestGetHistoryLimit verifies newest-first ordering and the limit
func TestGetHistoryLimit(t *testing.T) {
	database := testDB(t)

	for _, handle := range []string{"first", "second", "third"} {
		if _, err := database.InsertQuery(models.QueryHistoryEntry{
			Handle:    handle,
			StartDate: "2024-06-01",
			EndDate:   "2024-06-30",
		}); err != nil {
			t.Fatalf("InsertQuery failed: %v", err)
		}
	}

	entries, err := database.GetHistory(2)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Handle != "third" {
		t.Errorf("newest entry should come first, got %q", entries[0].Handle)
	}
}
