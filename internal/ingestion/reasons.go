package ingestion

import "fmt"

// RejectReason is the machine-readable code attached to every per-file
// rejection. Rejections are recoverable by design: one bad file never
// aborts the rest of the pass.
type RejectReason string

const (
	// ReasonInvalidDateToken: file name has no valid YYYYMMDD token.
	ReasonInvalidDateToken RejectReason = "invalid_date_token"
	// ReasonUnreadableFile: the workbook could not be opened or read.
	ReasonUnreadableFile RejectReason = "unreadable_file"
	// ReasonEmptyFile: the sheet holds no usable data rows.
	ReasonEmptyFile RejectReason = "empty_file"
	// ReasonMissingColumns: the required column set is not present.
	ReasonMissingColumns RejectReason = "missing_columns"
	// ReasonNonNumericField: a numeric cell failed integer coercion
	// (whole-file reject unless row salvage is enabled).
	ReasonNonNumericField RejectReason = "non_numeric_field"
)

// RejectError carries the reason a file was refused plus human-readable
// detail. It is the only error type the parser returns for file-level
// rejections.
type RejectError struct {
	Reason RejectReason
	Detail string
}

func (e *RejectError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func rejectf(reason RejectReason, format string, args ...interface{}) *RejectError {
	return &RejectError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
