package docmodel

import "errors"

// Ingestion and chat failures are reported through these sentinels so
// callers can map them to stable codes without string matching.
var (
	ErrUnsupportedFormat   = errors.New("unsupported document format")
	ErrTooLarge            = errors.New("document exceeds the ingestable size")
	ErrReadFailed          = errors.New("document could not be read")
	ErrNoExtractableText   = errors.New("document contains no extractable text")
	ErrExtractionFailed    = errors.New("text extraction failed")
	ErrSummarizationFailed = errors.New("summarization failed")
)

// ErrorCode maps a pipeline error to its wire code. Unknown errors
// collapse to INTERNAL_ERROR rather than leaking internals.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "UNSUPPORTED_FORMAT"
	case errors.Is(err, ErrTooLarge):
		return "TOO_LARGE"
	case errors.Is(err, ErrReadFailed):
		return "READ_ERROR"
	case errors.Is(err, ErrNoExtractableText):
		return "NO_EXTRACTABLE_TEXT"
	case errors.Is(err, ErrExtractionFailed):
		return "EXTRACTION_FAILED"
	case errors.Is(err, ErrSummarizationFailed):
		return "SUMMARIZATION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
