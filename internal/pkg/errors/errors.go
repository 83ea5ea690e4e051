package errors

import "errors"

var (
	ErrInvalid      = errors.New("invalid")
	ErrExtraction   = errors.New("pdf extraction failed")
	ErrEmptySummary = errors.New("empty summary")
	ErrQuota        = errors.New("insufficient credits")
	ErrTimeout      = errors.New("model request timed out")
)

