package extract

import "strings"

// Page is the pre-filtered text of one document page: ordered, trimmed,
// non-blank lines plus a 1-based page number. Pages are immutable once built;
// every rule in this package is a pure function of a Page.
type Page struct {
	DocID  string
	Number int
	Lines  []string
}

// NewPage tokenizes raw page text into a Page. NUL bytes are stripped,
// every line is trimmed, and blank lines are dropped.
func NewPage(docID string, number int, raw string) Page {
	raw = strings.ReplaceAll(raw, "\x00", "")
	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return Page{DocID: docID, Number: number, Lines: lines}
}

// Text returns the page as a single string with one line per row. Anchored
// rules match against this form, so an anchor and its value may sit on
// adjacent lines.
func (p Page) Text() string {
	return strings.Join(p.Lines, "\n")
}
