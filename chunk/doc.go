// Package chunk splits staged page text into semantic chunks ready for
// embedding and indexing.
package chunk
