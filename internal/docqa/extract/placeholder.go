package extract

import (
	"context"

	"github.com/akolanti/docqa/internal/domain/docmodel"
)

// placeholderExtractor serves the formats we accept but do not parse
// (images, word processor files). It never opens the spool file and
// never fails: the fixed sentinel text flows through summarization and
// chat like real content.
type placeholderExtractor struct {
	text string
}

func (e *placeholderExtractor) Extract(ctx context.Context, doc docmodel.Document) (string, error) {
	return e.text, nil
}
