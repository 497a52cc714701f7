package store

import "strconv"

// Page is one page of document text, serialized as a single-key object
// mapping the zero-based page index (as a string) to the page's text:
//
//	{"0": "first page text"}
//
// The ordered []Page slices on Document preserve page order; the key inside
// each entry must agree with the entry's position.
type Page map[string]string

// NewPage builds a page entry for the given zero-based index.
func NewPage(index int, text string) Page {
	return Page{strconv.Itoa(index): text}
}

// Index returns the page's index key. Empty string if the entry is empty.
func (p Page) Index() string {
	k, _ := p.entry()
	return k
}

// Text returns the page's text content.
func (p Page) Text() string {
	_, v := p.entry()
	return v
}

// entry resolves the page's key/value pair in one pass. A malformed
// multi-key entry resolves to its lexically smallest key so Index and Text
// always come from the same pair, regardless of map iteration order.
func (p Page) entry() (string, string) {
	var key, text string
	first := true
	for k, v := range p {
		if first || k < key {
			key, text = k, v
			first = false
		}
	}
	return key, text
}
