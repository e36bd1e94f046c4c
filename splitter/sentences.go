package splitter

import "strings"

// splitSentences segments text into sentences at runs of '.', '!', '?'
// followed by whitespace or end of text. Sentences are trimmed; whitespace
// only spans are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}

		// Consume the full run of terminators ("...", "?!").
		j := i + 1
		for j < len(text) && isTerminator(text[j]) {
			j++
		}
		if j < len(text) && !isSpace(text[j]) {
			// Mid-token punctuation, e.g. "3.14" or "example.com".
			i = j - 1
			continue
		}

		if sentence := strings.TrimSpace(text[start:j]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = j
		i = j - 1
	}

	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
