// Package pdftext turns PDF files into the line-oriented pages the extraction
// engine consumes. Text is read row by row so the page's vertical reading
// order survives; everything downstream works on whole lines.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// Source reads pages out of PDF files on disk.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

// Pages extracts every page of the document at path. Pages that yield no
// text are kept (with zero lines) so page numbering stays aligned with the
// physical document. A file that cannot be opened, or that yields no text on
// any page, fails with domain.ErrDocumentUnreadable.
func (s *Source) Pages(path string) ([]extract.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrDocumentUnreadable, path, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]extract.Page, 0, total)
	gotText := false

	for num := 1; num <= total; num++ {
		text, err := pageText(r, num)
		if err != nil {
			// A single damaged page should not sink the document.
			pages = append(pages, extract.NewPage(path, num, ""))
			continue
		}
		if text != "" {
			gotText = true
		}
		pages = append(pages, extract.NewPage(path, num, text))
	}

	if !gotText {
		return nil, fmt.Errorf("%w: no text in %s", domain.ErrDocumentUnreadable, path)
	}
	return pages, nil
}

// pageText renders one page as newline-separated rows, each row's words
// joined by single spaces.
func pageText(r *pdf.Reader, num int) (string, error) {
	p := r.Page(num)
	if p.V.IsNull() {
		return "", nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("page %d: %w", num, err)
	}

	var b strings.Builder
	for _, row := range rows {
		for i, word := range row.Content {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(word.S)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
