package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedKind    = errors.New("unsupported document kind")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrFormatKindMismatch = errors.New("export format not available for document kind")
	ErrNoResultData       = errors.New("analysis has no result data")
	ErrUploadFailed       = errors.New("export upload to storage failed")
)
