package dto

// FileRejection describes one source file the ingestion pass refused,
// with its machine-readable reason code.
//
// swagger:model FileRejection
type FileRejection struct {
	File   string `json:"file" example:"20240101_broker.xlsx"`
	Reason string `json:"reason" example:"missing_columns"`
	Detail string `json:"detail,omitempty" example:"missing columns: Frekuensi"`
}

// IngestReport summarizes an ingestion or refresh pass: how many files
// were attempted, how many were accepted, and why the rest failed.
//
// swagger:model IngestReport
type IngestReport struct {
	Attempted int             `json:"attempted" example:"120"`
	Accepted  int             `json:"accepted" example:"118"`
	Rejected  []FileRejection `json:"rejected,omitempty"`
}

// UploadResult describes the outcome of one uploaded file.
//
// swagger:model UploadResult
type UploadResult struct {
	File     string `json:"file" example:"20240101_broker.xlsx"`
	Accepted bool   `json:"accepted" example:"true"`
	Reason   string `json:"reason,omitempty" example:"invalid_date_token"`
	Detail   string `json:"detail,omitempty"`
}
