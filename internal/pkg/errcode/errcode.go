package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrInvalid
	ErrInvalidFile
	ErrFileTooLarge
	ErrInvalidLanguage
	ErrExtraction
	ErrEmptySummary
	ErrQuota
	ErrTimeout
	ErrAIUnavailable
	ErrInternal
)
