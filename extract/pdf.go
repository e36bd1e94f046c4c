package extract

import (
	"fmt"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFParser extracts per-page plain text from PDF documents. The file is
// first optimized with relaxed validation, which repairs the malformed
// cross-reference tables common in scanned uploads before text extraction.
type PDFParser struct{}

var _ Parser = (*PDFParser)(nil)

// Pages returns the UTF-8 text of each page in order.
func (p *PDFParser) Pages(path string) ([]string, error) {
	optimized := path + ".optimized"
	cfg := pdfmodel.NewDefaultConfiguration()
	cfg.ValidationMode = pdfmodel.ValidationRelaxed
	if err := pdfapi.OptimizeFile(path, optimized, cfg); err != nil {
		return nil, fmt.Errorf("optimize pdf: %w", err)
	}

	file, reader, err := pdf.Open(optimized)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", n, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
