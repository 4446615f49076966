package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/internal/domain/docmodel"
)

// --- Fake parser ---

type fakeDocument struct {
	pages    []string
	pageErrs map[int]error
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageText(number int) (string, error) {
	if err := d.pageErrs[number]; err != nil {
		return "", err
	}
	return d.pages[number-1], nil
}

type fakeParser struct {
	doc     *fakeDocument
	openErr error
}

func (p *fakeParser) Open(path string) (PagedDocument, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.doc, nil
}

func registryWith(parser PageParser) *Registry {
	return NewRegistry(parser)
}

// --- Unit Tests ---

func TestPlainTextVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o600); err != nil {
		t.Fatal(err)
	}

	reg := registryWith(&fakeParser{})
	got, err := reg.Extract(context.Background(), docmodel.PlainText, docmodel.Document{SpoolPath: path})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Extract = %q; want %q", got, "hello world")
	}
}

func TestPlainTextReadError(t *testing.T) {
	reg := registryWith(&fakeParser{})
	_, err := reg.Extract(context.Background(), docmodel.PlainText, docmodel.Document{SpoolPath: "/nonexistent/doc.txt"})
	if !errors.Is(err, docmodel.ErrReadFailed) {
		t.Errorf("expected ErrReadFailed, got %v", err)
	}
}

func TestPDFPageOrderAndNewlines(t *testing.T) {
	parser := &fakeParser{doc: &fakeDocument{pages: []string{"Page one text", "Page two text"}}}
	reg := registryWith(parser)

	got, err := reg.Extract(context.Background(), docmodel.PDF, docmodel.Document{SpoolPath: "doc.pdf"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := "Page one text\nPage two text\n"
	if got != want {
		t.Errorf("Extract = %q; want %q", got, want)
	}
}

func TestPDFEmptyPageStillSeparates(t *testing.T) {
	parser := &fakeParser{doc: &fakeDocument{pages: []string{"First", "", "Third"}}}
	reg := registryWith(parser)

	got, err := reg.Extract(context.Background(), docmodel.PDF, docmodel.Document{SpoolPath: "doc.pdf"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := "First\n\nThird\n"
	if got != want {
		t.Errorf("Extract = %q; want %q", got, want)
	}
}

func TestPDFWhitespaceOnly(t *testing.T) {
	parser := &fakeParser{doc: &fakeDocument{pages: []string{"   ", "\t", " "}}}
	reg := registryWith(parser)

	_, err := reg.Extract(context.Background(), docmodel.PDF, docmodel.Document{SpoolPath: "scanned.pdf"})
	if !errors.Is(err, docmodel.ErrNoExtractableText) {
		t.Errorf("expected ErrNoExtractableText, got %v", err)
	}
}

func TestPDFOpenFailure(t *testing.T) {
	parser := &fakeParser{openErr: errors.New("malformed xref table")}
	reg := registryWith(parser)

	_, err := reg.Extract(context.Background(), docmodel.PDF, docmodel.Document{SpoolPath: "broken.pdf"})
	if !errors.Is(err, docmodel.ErrExtractionFailed) {
		t.Errorf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestPDFPageFailure(t *testing.T) {
	parser := &fakeParser{doc: &fakeDocument{
		pages:    []string{"fine", "broken"},
		pageErrs: map[int]error{2: errors.New("corrupt stream")},
	}}
	reg := registryWith(parser)

	_, err := reg.Extract(context.Background(), docmodel.PDF, docmodel.Document{SpoolPath: "doc.pdf"})
	if !errors.Is(err, docmodel.ErrExtractionFailed) {
		t.Errorf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestPlaceholdersNeverTouchTheFile(t *testing.T) {
	reg := registryWith(&fakeParser{openErr: errors.New("must not be called")})
	doc := docmodel.Document{SpoolPath: "/nonexistent/never-opened"}

	tests := []struct {
		format docmodel.Format
		want   string
	}{
		{docmodel.JPEG, config.ImagePlaceholderText},
		{docmodel.PNG, config.ImagePlaceholderText},
		{docmodel.WordLegacy, config.WordPlaceholderText},
		{docmodel.WordXML, config.WordPlaceholderText},
	}

	for _, tt := range tests {
		got, err := reg.Extract(context.Background(), tt.format, doc)
		if err != nil {
			t.Fatalf("Extract(%s) failed: %v", tt.format, err)
		}
		if got != tt.want {
			t.Errorf("Extract(%s) = %q; want %q", tt.format, got, tt.want)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	reg := registryWith(&fakeParser{})
	_, err := reg.Extract(context.Background(), docmodel.Format("TIFF"), docmodel.Document{})
	if !errors.Is(err, docmodel.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
