package extract

import (
	"os"
	"strings"
)

// pageDelimiter separates pages in plain-text documents (form feed).
const pageDelimiter = "\f"

// TextParser treats a plain-text file as a paginated document with pages
// separated by form-feed characters. A file without form feeds is a single
// page.
type TextParser struct{}

var _ Parser = (*TextParser)(nil)

// Pages returns the text between form feeds, in order.
func (p *TextParser) Pages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), pageDelimiter), nil
}
