// Package pdftext extracts plain text from uploaded contract PDFs.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultPageLimit is how many leading pages are read from a contract.
const DefaultPageLimit = 51

// ErrParse indicates the document could not be read as a PDF. No partial
// text is returned alongside it.
var ErrParse = errors.New("could not read PDF")

// Extractor converts a document into plain text.
type Extractor interface {
	Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// pageSource is the slice of a PDF reader the extraction loop needs.
type pageSource interface {
	NumPage() int
	PageText(num int) (string, error)
}

// PDFExtractor reads text with github.com/ledongthuc/pdf.
type PDFExtractor struct {
	PageLimit int
}

// NewPDFExtractor returns an extractor capped at pageLimit pages; values
// below one fall back to DefaultPageLimit.
func NewPDFExtractor(pageLimit int) *PDFExtractor {
	if pageLimit < 1 {
		pageLimit = DefaultPageLimit
	}
	return &PDFExtractor{PageLimit: pageLimit}
}

func (x *PDFExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrParse, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	return extractPages(ctx, ledongthucSource{reader}, x.PageLimit)
}

// ExtractFile opens path and extracts its text.
func ExtractFile(ctx context.Context, x Extractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return x.Extract(ctx, bytes.NewReader(data), int64(len(data)))
}

func extractPages(ctx context.Context, src pageSource, limit int) (string, error) {
	var b strings.Builder
	n := src.NumPage()
	for i := 1; i <= n && i <= limit; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := src.PageText(i)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrParse, i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

type ledongthucSource struct {
	r *pdf.Reader
}

func (s ledongthucSource) NumPage() int { return s.r.NumPage() }

func (s ledongthucSource) PageText(num int) (string, error) {
	p := s.r.Page(num)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}
