// Package splitter provides the semantic-boundary-detection capability used
// by the chunker to turn page text into coherent segments.
//
// Semantic is the production splitter: it embeds windows of neighboring
// sentences and breaks where the cosine distance between consecutive windows
// spikes past a percentile threshold. Recursive is a purely length-based
// alternative built on langchaingo's text splitter.
package splitter
