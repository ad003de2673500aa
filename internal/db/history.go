package db

import (
	"fmt"

	"github.com/eclogic/waybacktweets/internal/models"
)

// InsertQuery records a completed query and returns its row ID
func (db *DB) InsertQuery(entry models.QueryHistoryEntry) (int64, error) {
	result, err := db.conn.Exec(insertHistory,
		entry.Handle,
		entry.StartDate,
		entry.EndDate,
		entry.StatusCodes,
		entry.CaptureCount,
		entry.MatchCount,
		entry.ExportFile,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get history entry id: %w", err)
	}
	return id, nil
}

// GetHistory returns the most recent queries, newest first
func (db *DB) GetHistory(limit int) ([]models.QueryHistoryEntry, error) {
	rows, err := db.conn.Query(selectHistory, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.QueryHistoryEntry
	for rows.Next() {
		var e models.QueryHistoryEntry
		var queriedAt string
		if err := rows.Scan(
			&e.ID, &e.Handle, &e.StartDate, &e.EndDate, &e.StatusCodes,
			&e.CaptureCount, &e.MatchCount, &e.ExportFile, &queriedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.QueriedAt, _ = parseTimestamp(queriedAt)
		entries = append(entries, e)
	}

	return entries, nil
}

// SetExportFile records the export path after a download is written
func (db *DB) SetExportFile(id int64, path string) error {
	_, err := db.conn.Exec(updateHistoryExport, path, id)
	if err != nil {
		return fmt.Errorf("failed to update export file: %w", err)
	}
	return nil
}

// DeleteEntry removes a single history entry by ID
func (db *DB) DeleteEntry(id int64) error {
	_, err := db.conn.Exec(deleteHistoryEntry, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}
