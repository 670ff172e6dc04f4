package services

import (
	"errors"
	"fmt"
)

// Error kinds used to classify pipeline failures. Only KindPermissionDenied
// aborts a run; everything else is isolated to its record or asset.
const (
	KindPermissionDenied = "permission_denied"
	KindUnrecognizedType = "unrecognized_type"
	KindAssetFetchFailed = "asset_fetch_failed"
	KindWriteFailed      = "write_failed"
	KindProcessingError  = "processing_error"
)

// ExportError is a classified pipeline failure. Subject names what failed
// (an asset locator, a slug).
type ExportError struct {
	Kind    string
	Subject string
	Err     error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Subject, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ErrorKind extracts the classification of err, or KindProcessingError when
// err carries none.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var ee *ExportError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindProcessingError
}
