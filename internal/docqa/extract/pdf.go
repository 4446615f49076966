package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

type pdfExtractor struct {
	parser PageParser
	logger *applog.Logger
}

// Extract walks pages 1..N strictly in order, one newline after each
// page. A page error aborts the whole document rather than skipping
// the page, so the output never silently misses content.
func (e *pdfExtractor) Extract(ctx context.Context, doc docmodel.Document) (string, error) {
	e.logger.Debug("extractPDF", "attempting extraction", doc.SpoolPath)
	parsed, err := e.parser.Open(doc.SpoolPath)
	if err != nil {
		e.logger.Error("failed opening of pdf file", "error", err)
		return "", fmt.Errorf("%w: opening pdf: %v", docmodel.ErrExtractionFailed, err)
	}

	var text strings.Builder
	numPages := parsed.NumPages()
	e.logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		content, err := parsed.PageText(i)
		if err != nil {
			e.logger.Error("Error parsing page content", "page", i, "error", err)
			return "", fmt.Errorf("%w: page %d: %v", docmodel.ErrExtractionFailed, i, err)
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	if strings.TrimSpace(text.String()) == "" {
		e.logger.Warn("pdf has no text layer", "path", doc.SpoolPath)
		return "", fmt.Errorf("%w: pdf has no text layer", docmodel.ErrNoExtractableText)
	}
	return text.String(), nil
}
