package extract

import (
	"context"
	"fmt"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
	"github.com/akolanti/docqa/pkg/applog"
)

// Extractor turns a classified document into its text content.
type Extractor interface {
	Extract(ctx context.Context, doc docmodel.Document) (string, error)
}

// Registry holds one extractor per accepted format. New formats get a
// new entry here, the dispatch itself never changes.
type Registry struct {
	extractors map[docmodel.Format]Extractor
}

func NewRegistry(parser PageParser) *Registry {
	return &Registry{
		extractors: map[docmodel.Format]Extractor{
			docmodel.PlainText:  &plainTextExtractor{logger: applog.NewLogger("Text Extraction")},
			docmodel.PDF:        &pdfExtractor{parser: parser, logger: applog.NewLogger("PDF Extraction")},
			docmodel.JPEG:       &placeholderExtractor{text: config.ImagePlaceholderText},
			docmodel.PNG:        &placeholderExtractor{text: config.ImagePlaceholderText},
			docmodel.WordLegacy: &placeholderExtractor{text: config.WordPlaceholderText},
			docmodel.WordXML:    &placeholderExtractor{text: config.WordPlaceholderText},
		},
	}
}

func (r *Registry) Extract(ctx context.Context, format docmodel.Format, doc docmodel.Document) (string, error) {
	extractor, ok := r.extractors[format]
	if !ok {
		return "", fmt.Errorf("%w: no extractor for format %s", docmodel.ErrUnsupportedFormat, format)
	}
	return extractor.Extract(ctx, doc)
}
