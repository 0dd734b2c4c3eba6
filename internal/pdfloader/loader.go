package pdfloader

import (
	"bytes"
	"fmt"
	"strings"

	"rsc.io/pdf"

	"github.com/duttanayan/LLM-pdf-summmarizer/internal/domain"
)

// Loader extracts page texts from an uploaded PDF byte stream.
type Loader struct{}

// New creates a PDF loader.
func New() *Loader { return &Loader{} }

// Load parses the byte stream and returns one entry per page, in page order.
// Returns domain.ErrInvalidPDF when the bytes are not a readable PDF and
// domain.ErrNoText when no page yields any text.
func (l *Loader) Load(data []byte) (pages []domain.Page, err error) {
	// rsc.io/pdf panics on some malformed inputs; contain that as a load error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", domain.ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		var sb strings.Builder
		for _, t := range page.Content().Text {
			// Some extractors emit NUL bytes for unmapped glyphs.
			sb.WriteString(strings.ReplaceAll(t.S, "\x00", ""))
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		pages = append(pages, domain.Page{Number: i, Text: text})
	}
	if len(pages) == 0 {
		return nil, domain.ErrNoText
	}
	return pages, nil
}
