package ingestion

import "errors"

var (
	// ErrEmptyInput is returned when a file holds no text once cleaned.
	ErrEmptyInput = errors.New("ingestion: input is empty")
	// ErrUnsupportedFormat is returned for file extensions the ingester cannot read.
	ErrUnsupportedFormat = errors.New("ingestion: unsupported format")
)
