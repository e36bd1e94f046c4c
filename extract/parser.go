package extract

import "strings"

// Parser converts a locally downloaded document file into an ordered
// sequence of page texts. Implementations are registered per file
// extension; pages are returned in document order, one string per page,
// and may be empty for pages without extractable text.
type Parser interface {
	Pages(path string) ([]string, error)
}

// Registry maps file extensions to parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a registry with the default parsers: PDF and plain
// text. Additional formats are added with Register.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	r.Register(".pdf", &PDFParser{})
	r.Register(".txt", &TextParser{})
	return r
}

// Register adds or replaces the parser for an extension. The extension is
// normalized to lowercase with a leading dot.
func (r *Registry) Register(ext string, parser Parser) {
	r.parsers[normalizeExt(ext)] = parser
}

// Lookup returns the parser for an extension, if one is registered.
func (r *Registry) Lookup(ext string) (Parser, bool) {
	parser, ok := r.parsers[normalizeExt(ext)]
	return parser, ok
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
