package storage

import (
	"database/sql"
	"time"
)

// IngestionEntry is one row of the ingestion audit log: the outcome of
// processing one source file in one pass.
type IngestionEntry struct {
	File       string
	FileDate   time.Time
	RowCount   int
	Status     string // "accepted" or "rejected"
	Reason     string // reject reason code, empty when accepted
	IngestedAt time.Time
}

// IngestionRepository records and reads the audit log kept in Postgres.
//
// Expected schema:
//
//	CREATE TABLE ingestion_log (
//	    filename    TEXT PRIMARY KEY,
//	    file_date   DATE,
//	    row_count   INT NOT NULL DEFAULT 0,
//	    status      TEXT NOT NULL,
//	    reason      TEXT NOT NULL DEFAULT '',
//	    ingested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type IngestionRepository interface {
	RecordIngestion(entry IngestionEntry) error
	ListIngestions(limit int) ([]IngestionEntry, error)
}

type ingestionRepository struct {
	db *sql.DB
}

func NewIngestionRepository(db *sql.DB) IngestionRepository {
	return &ingestionRepository{db: db}
}

// RecordIngestion upserts the audit entry for a file. Re-ingesting the
// same file overwrites the previous outcome.
func (r *ingestionRepository) RecordIngestion(entry IngestionEntry) error {
	var fileDate interface{}
	if !entry.FileDate.IsZero() {
		fileDate = entry.FileDate
	}
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (filename, file_date, row_count, status, reason)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (filename)
		DO UPDATE SET file_date = EXCLUDED.file_date,
					  row_count = EXCLUDED.row_count,
					  status = EXCLUDED.status,
					  reason = EXCLUDED.reason,
					  ingested_at = NOW()
	`, entry.File, fileDate, entry.RowCount, entry.Status, entry.Reason)
	return err
}

// ListIngestions returns the most recent audit entries, newest first.
func (r *ingestionRepository) ListIngestions(limit int) ([]IngestionEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(`
		SELECT filename, file_date, row_count, status, reason, ingested_at
		FROM ingestion_log
		ORDER BY ingested_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []IngestionEntry
	for rows.Next() {
		var e IngestionEntry
		var fileDate sql.NullTime
		if err := rows.Scan(&e.File, &fileDate, &e.RowCount, &e.Status, &e.Reason, &e.IngestedAt); err != nil {
			return nil, err
		}
		if fileDate.Valid {
			e.FileDate = fileDate.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
