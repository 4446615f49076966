package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/docqa/internal/config"
	"github.com/akolanti/docqa/pkg/applog"
	"github.com/dslipak/pdf"
)

// PageParser opens a paginated binary for in-order page reads.
type PageParser interface {
	Open(path string) (PagedDocument, error)
}

// PagedDocument yields one page of text at a time, pages numbered from
// 1. Fragments on a page come back joined with single spaces.
type PagedDocument interface {
	NumPages() int
	PageText(number int) (string, error)
}

type pdfParser struct {
	logger *applog.Logger
}

func NewPDFParser() PageParser {
	return &pdfParser{logger: applog.NewLogger("PDF Parser")}
}

func (p *pdfParser) Open(path string) (PagedDocument, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &pdfDocument{reader: reader, logger: p.logger}, nil
}

type pdfDocument struct {
	reader *pdf.Reader
	logger *applog.Logger
}

func (d *pdfDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(number int) (string, error) {
	page := d.reader.Page(number)
	if page.V.IsNull() {
		d.logger.Debug("PageText", "null page", number)
		return "", nil
	}
	return protectExtract(page, d.logger)
}

// the pdf library can panic on malformed content streams, so the read
// runs in its own goroutine with a recover and a hard timeout.
func protectExtract(page pdf.Page, logger *applog.Logger) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page read panicked: %v", r)}
			}
		}()
		content, err := pageWords(page)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract timed out")
		return "", errors.New("timeout")
	}
}

func pageWords(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}
	var words []string
	for _, row := range rows {
		for _, word := range row.Content {
			words = append(words, word.S)
		}
	}
	return strings.Join(words, " "), nil
}
