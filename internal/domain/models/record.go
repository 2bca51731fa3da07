package models

import "time"

// SourceRecord represents a single row of a daily broker-summary file.
// Each field matches one column of the IDX export:
//
//	Kode Perusahaan → BrokerCode
//	Nama Perusahaan → BrokerName
//	Volume          → Volume
//	Nilai           → Value
//	Frekuensi       → Frequency
//
// All three numeric fields are non-negative integers; the parser never
// produces a record violating that.
type SourceRecord struct {
	BrokerCode string
	BrokerName string
	Volume     int64
	Value      int64
	Frequency  int64
}

// DailyBatch is the set of records parsed from one source file.
// The date comes from the 8-digit YYYYMMDD token in the file name and is
// authoritative for every record in the batch. A batch is immutable once
// accepted by the ingestion pass.
type DailyBatch struct {
	Date    time.Time
	File    string
	Records []SourceRecord
}
