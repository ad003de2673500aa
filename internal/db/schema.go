package db

// Schema for query history (one row per completed query)
const createHistoryTable = `
CREATE TABLE IF NOT EXISTS query_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    handle TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    status_codes TEXT NOT NULL DEFAULT '',
    capture_count INTEGER NOT NULL DEFAULT 0,
    match_count INTEGER NOT NULL DEFAULT 0,
    export_file TEXT NOT NULL DEFAULT '',
    queried_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_history_handle ON query_history(handle);
`

const insertHistory = `
INSERT INTO query_history (handle, start_date, end_date, status_codes, capture_count, match_count, export_file)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const selectHistory = `
SELECT id, handle, start_date, end_date, status_codes, capture_count, match_count, export_file, queried_at
FROM query_history
ORDER BY queried_at DESC, id DESC
LIMIT ?
`

const updateHistoryExport = `
UPDATE query_history SET export_file = ? WHERE id = ?
`

const deleteHistoryEntry = `
DELETE FROM query_history WHERE id = ?
`
