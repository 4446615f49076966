package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

// plainTextExtractor returns the spool file bytes verbatim. No
// trimming, no normalization, the uploaded text IS the extracted text.
type plainTextExtractor struct {
	logger *applog.Logger
}

func (e *plainTextExtractor) Extract(ctx context.Context, doc docmodel.Document) (string, error) {
	e.logger.Debug("extracting plain text", "path", doc.SpoolPath)
	data, err := os.ReadFile(doc.SpoolPath)
	if err != nil {
		e.logger.Error("failed reading text file", "error", err)
		return "", fmt.Errorf("%w: %v", docmodel.ErrReadFailed, err)
	}
	return string(data), nil
}
