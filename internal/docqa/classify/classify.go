package classify

import (
	"fmt"
	"mime"
	"strings"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
)

// formats maps each accepted media type to the format the extractor
// registry dispatches on. Classification reads the declared type and
// size only, never the bytes.
var formats = map[string]docmodel.Format{
	config.MediaTypePDF:        docmodel.PDF,
	config.MediaTypeWordLegacy: docmodel.WordLegacy,
	config.MediaTypeWordXML:    docmodel.WordXML,
	config.MediaTypePlainText:  docmodel.PlainText,
	config.MediaTypeJPEG:       docmodel.JPEG,
	config.MediaTypePNG:        docmodel.PNG,
}

// Classify must pass before any extraction work starts. The media type
// check runs first, so an oversized unknown type still reports the
// unsupported format.
func Classify(doc docmodel.Document) (docmodel.Format, error) {
	format, ok := formats[normalize(doc.MediaType)]
	if !ok {
		return "", fmt.Errorf("media type %q: %w", doc.MediaType, docmodel.ErrUnsupportedFormat)
	}
	if doc.SizeBytes >= config.MaxDocumentSizeBytes {
		return "", fmt.Errorf("document is %d bytes, ceiling is %d: %w",
			doc.SizeBytes, config.MaxDocumentSizeBytes, docmodel.ErrTooLarge)
	}
	return format, nil
}

func normalize(mediaType string) string {
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mediaType))
	}
	return parsed
}
