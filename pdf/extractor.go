// Package pdf extracts per-page plain text from PDF documents such as the
// association's Residential Improvement Guidelines.
package pdf

import (
	"fmt"
	"strings"

	"github.com/covdoc/covdoc"
	"github.com/ledongthuc/pdf"
)

var _ covdoc.PDFExtractor = (*Extractor)(nil)

// Extractor reads PDF files from the local filesystem.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the plain text of each page in the document, in page
// order. Pages whose text cannot be decoded are skipped with their number
// preserved for the pages that follow; a document where no page decodes is
// an error.
func (e *Extractor) ExtractPages(path string) ([]covdoc.PDFPage, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	if total == 0 {
		return nil, covdoc.Errorf(covdoc.EINVALID, "%s has no pages", path)
	}

	var pages []covdoc.PDFPage
	for num := 1; num <= total; num++ {
		page := r.Page(num)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, covdoc.PDFPage{Number: num, Text: text})
	}

	if len(pages) == 0 {
		return nil, covdoc.Errorf(covdoc.EINVALID, "no extractable text in %s", path)
	}

	return pages, nil
}
