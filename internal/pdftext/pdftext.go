// Package pdftext turns a gazette PDF into best-effort linearized page text.
package pdftext

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
)

var (
	// ErrUnreadable is returned when the file cannot be opened or parsed as a PDF.
	ErrUnreadable = eris.New("pdftext: unreadable document")
	// ErrUndecodable is returned when a text string cannot be decoded.
	ErrUndecodable = eris.New("pdftext: undecodable text")
)

// Extractor extracts the text of each page of a PDF, in page order.
type Extractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}

// PDFCPU reads PDFs with pdfcpu and interprets page content streams.
type PDFCPU struct {
	conf *model.Configuration
}

// New creates a PDFCPU extractor with pdfcpu's default configuration.
func New() *PDFCPU {
	return &PDFCPU{conf: model.NewDefaultConfiguration()}
}

var _ Extractor = (*PDFCPU)(nil)

// ExtractPages returns one string per page with lines separated by "\n".
// Pages without text come back as empty strings.
func (p *PDFCPU) ExtractPages(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(ErrUnreadable, "open %s: %v", path, err)
	}
	defer f.Close()

	pctx, err := api.ReadValidateAndOptimize(f, p.conf)
	if err != nil {
		return nil, eris.Wrapf(ErrUnreadable, "pdfcpu read %s: %v", path, err)
	}

	pages := make([]string, 0, pctx.PageCount)
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "pdftext: extraction cancelled")
		}
		text, err := pageText(pctx, pageNr)
		if err != nil {
			return nil, eris.Wrapf(err, "%s page %d", path, pageNr)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func pageText(pctx *model.Context, pageNr int) (string, error) {
	// pdfcpu already maps a page without content to an empty reader.
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil {
		return "", eris.Wrapf(ErrUnreadable, "page content: %v", err)
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", eris.Wrapf(ErrUnreadable, "read content stream: %v", err)
	}
	lines, err := ParseContent(data)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
