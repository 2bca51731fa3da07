package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecordIngestion_Accepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	fileDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO ingestion_log").
		WithArgs("20240101.xlsx", fileDate, 42, "accepted", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewIngestionRepository(db)
	err = repo.RecordIngestion(IngestionEntry{
		File:     "20240101.xlsx",
		FileDate: fileDate,
		RowCount: 42,
		Status:   "accepted",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordIngestion_RejectedHasNullDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO ingestion_log").
		WithArgs("nodate.xlsx", nil, 0, "rejected", "invalid_date_token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewIngestionRepository(db)
	err = repo.RecordIngestion(IngestionEntry{
		File:   "nodate.xlsx",
		Status: "rejected",
		Reason: "invalid_date_token",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecordIngestion_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO ingestion_log").
		WillReturnError(errors.New("connection reset"))

	repo := NewIngestionRepository(db)
	if err := repo.RecordIngestion(IngestionEntry{File: "a.xlsx", Status: "accepted"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestListIngestions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	fileDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ingestedAt := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"filename", "file_date", "row_count", "status", "reason", "ingested_at"}).
		AddRow("20240101.xlsx", fileDate, 42, "accepted", "", ingestedAt).
		AddRow("nodate.xlsx", nil, 0, "rejected", "invalid_date_token", ingestedAt)

	mock.ExpectQuery("SELECT filename, file_date, row_count, status, reason, ingested_at").
		WithArgs(25).
		WillReturnRows(rows)

	repo := NewIngestionRepository(db)
	entries, err := repo.ListIngestions(25)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: want 2 got %d", len(entries))
	}
	if entries[0].File != "20240101.xlsx" || entries[0].RowCount != 42 || !entries[0].FileDate.Equal(fileDate) {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Reason != "invalid_date_token" || !entries[1].FileDate.IsZero() {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListIngestions_DefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT filename, file_date, row_count, status, reason, ingested_at").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"filename", "file_date", "row_count", "status", "reason", "ingested_at"}))

	repo := NewIngestionRepository(db)
	if _, err := repo.ListIngestions(0); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
