package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldRule extracts one scalar header field from a page. Every rule is
// total: when the page does not carry the field, the result is "" and never
// an error. Rules are built once per vendor and never mutated.
type FieldRule interface {
	Extract(p Page) string
}

// AnchoredRegex searches the whole page text for a pattern and returns a
// capture group, trimmed. Because the search runs over the joined page text,
// the anchor and its value may span a line break.
type AnchoredRegex struct {
	re        *regexp.Regexp
	group     int
	commaFree bool
}

// NewAnchoredRegex compiles pattern and returns a rule yielding capture
// group `group` of the first match. Panics on an invalid pattern, so vendor
// tables fail at startup rather than mid-batch.
func NewAnchoredRegex(pattern string, group int) AnchoredRegex {
	return AnchoredRegex{re: regexp.MustCompile(pattern), group: group}
}

// CommaFree returns a copy of the rule that strips thousands separators from
// its result, for anchored totals.
func (r AnchoredRegex) CommaFree() AnchoredRegex {
	r.commaFree = true
	return r
}

func (r AnchoredRegex) Extract(p Page) string {
	m := r.re.FindStringSubmatch(p.Text())
	if m == nil || r.group >= len(m) {
		return ""
	}
	out := strings.TrimSpace(m[r.group])
	if r.commaFree {
		out = strings.ReplaceAll(out, ",", "")
	}
	return out
}

// FirstLineAfterLabel returns the line immediately following the line that
// exactly equals Label. "" when the label is absent or is the last line.
type FirstLineAfterLabel struct {
	Label string
	Fold  bool // case-insensitive label comparison
}

func (r FirstLineAfterLabel) Extract(p Page) string {
	for i, ln := range p.Lines {
		if ln == r.Label || (r.Fold && foldEqual(ln, r.Label)) {
			if i+1 < len(p.Lines) {
				return p.Lines[i+1]
			}
			return ""
		}
	}
	return ""
}

// ScanDirection selects which way LastLineBeforeLabel walks from its label.
type ScanDirection int

const (
	ScanBackward ScanDirection = iota // toward the top of the page
	ScanForward                       // toward the bottom of the page
)

// LastLineBeforeLabel locates a label line and scans nearby lines in the
// vendor-declared direction for the first plausible free-text candidate.
// Candidates are rejected when they appear in SkipWords, start with one of
// SkipPrefixes, are a date, or are a bare six-plus character code. The result
// is "" when nothing qualifies; an empty job name is a valid outcome,
// distinct from the rule being inapplicable.
type LastLineBeforeLabel struct {
	Label        string
	Contains     bool // label matches by substring instead of whole line
	Direction    ScanDirection
	MaxScan      int // lines to examine past the label; 0 means to the page edge
	SkipWords    []string
	SkipPrefixes []string
}

func (r LastLineBeforeLabel) Extract(p Page) string {
	at := -1
	for i, ln := range p.Lines {
		if r.matchLabel(ln) {
			at = i
			break
		}
	}
	if at < 0 {
		return ""
	}

	step := 1
	if r.Direction == ScanBackward {
		step = -1
	}
	for i, seen := at+step, 0; i >= 0 && i < len(p.Lines); i, seen = i+step, seen+1 {
		if r.MaxScan > 0 && seen >= r.MaxScan {
			break
		}
		if ln := p.Lines[i]; r.admissible(ln) {
			return ln
		}
	}
	return ""
}

func (r LastLineBeforeLabel) matchLabel(ln string) bool {
	if r.Contains {
		return strings.Contains(strings.ToLower(ln), strings.ToLower(r.Label))
	}
	return foldEqual(ln, r.Label)
}

func (r LastLineBeforeLabel) admissible(ln string) bool {
	low := strings.ToLower(ln)
	for _, w := range r.SkipWords {
		if low == strings.ToLower(w) {
			return false
		}
	}
	for _, pre := range r.SkipPrefixes {
		if strings.HasPrefix(low, strings.ToLower(pre)) {
			return false
		}
	}
	if IsDate(ln) || isBareCode(ln) {
		return false
	}
	return true
}

// moneyMatch is one monetary substring found on a page, in reading order.
type moneyMatch struct {
	text  string
	value float64
}

// findMoney collects every substring of the page text matching re, in
// reading order. When re has a capture group the group is taken as the
// amount, otherwise the whole match. A match whose preceding character
// continues a digit run is a fragment of some longer number, not an amount,
// and is dropped. Results are comma-free.
func findMoney(p Page, re *regexp.Regexp) []moneyMatch {
	text := p.Text()
	var out []moneyMatch
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		if prev := idx[0] - 1; prev >= 0 && isAmountChar(text[prev]) {
			continue
		}
		amt := text[idx[0]:idx[1]]
		if len(idx) > 2 && idx[2] >= 0 {
			amt = text[idx[2]:idx[3]]
		}
		amt = strings.TrimPrefix(amt, "$")
		amt = strings.ReplaceAll(amt, ",", "")
		v, err := strconv.ParseFloat(amt, 64)
		if err != nil {
			continue
		}
		out = append(out, moneyMatch{text: amt, value: v})
	}
	return out
}

func isAmountChar(c byte) bool {
	return c >= '0' && c <= '9' || c == ',' || c == '.'
}

// defaultMoneyPattern matches amounts like 440.70, 1,025.28 and $12,345.67,
// capturing the numeric part.
const defaultMoneyPattern = `\$?(\d{1,3}(?:,\d{3})*\.\d{2})\b`

// MaxNumericMatch collects all monetary substrings page-wide and returns the
// comma-free form of the greatest value. Ties break toward the first
// occurrence in reading order. "" when there are no candidates.
type MaxNumericMatch struct {
	re *regexp.Regexp
}

// NewMaxNumericMatch compiles a money pattern; pass "" for the default. The
// amount must be the first capture group when the pattern has one.
func NewMaxNumericMatch(pattern string) MaxNumericMatch {
	if pattern == "" {
		pattern = defaultMoneyPattern
	}
	return MaxNumericMatch{re: regexp.MustCompile(pattern)}
}

func (r MaxNumericMatch) Extract(p Page) string {
	best := ""
	bestVal := 0.0
	for _, m := range findMoney(p, r.re) {
		if best == "" || m.value > bestVal {
			best, bestVal = m.text, m.value
		}
	}
	return best
}

// LastNumericMatch performs the same page-wide money extraction but returns
// the last occurrence regardless of magnitude, for vendors that always print
// the grand total last.
type LastNumericMatch struct {
	re *regexp.Regexp
}

// NewLastNumericMatch compiles a money pattern; pass "" for the default.
func NewLastNumericMatch(pattern string) LastNumericMatch {
	if pattern == "" {
		pattern = defaultMoneyPattern
	}
	return LastNumericMatch{re: regexp.MustCompile(pattern)}
}

func (r LastNumericMatch) Extract(p Page) string {
	matches := findMoney(p, r.re)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1].text
}

// FirstLineMatching returns the first whole line satisfying a Matcher. Used
// for vendors whose invoice number is simply the first bare digit run on the
// page.
type FirstLineMatching struct {
	Match Matcher
}

func (r FirstLineMatching) Extract(p Page) string {
	for _, ln := range p.Lines {
		if r.Match(ln) {
			return ln
		}
	}
	return ""
}

// FirstDateOnPage returns the first date substring found anywhere on the
// page, in reading order.
type FirstDateOnPage struct{}

func (FirstDateOnPage) Extract(p Page) string {
	for _, ln := range p.Lines {
		if d := FindDate(ln); d != "" {
			return d
		}
	}
	return ""
}

// AfterNthDate scans a bounded window of lines following the Nth date on the
// page and returns the first candidate that is not a bare integer and does
// not contain any of the skip words. Scale-house tickets print the job name
// right after the second (outbound) weigh date.
type AfterNthDate struct {
	N         int
	Window    int
	SkipWords []string
}

func (r AfterNthDate) Extract(p Page) string {
	seen := 0
	start := -1
	for i, ln := range p.Lines {
		if FindDate(ln) != "" {
			seen++
			if seen == r.N {
				start = i + 1
				break
			}
		}
	}
	if start < 0 {
		return ""
	}
	for i := start; i < len(p.Lines) && i < start+r.Window; i++ {
		ln := p.Lines[i]
		if isAllDigits(ln) {
			continue
		}
		up := strings.ToUpper(ln)
		skip := false
		for _, w := range r.SkipWords {
			if strings.Contains(up, strings.ToUpper(w)) {
				skip = true
				break
			}
		}
		if !skip {
			return ln
		}
	}
	return ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CodeNearLabel returns the first line matching Shape within Window lines
// after a line containing Label. Failing that, it falls back to the first
// whole line matching the shape anywhere on the page, and as a last resort
// to the first boundary-delimited substring matching the shape inside any
// line. Used for layouts that print the invoice number just below a known
// caption.
type CodeNearLabel struct {
	Label  string
	Window int
	Shape  CodeShape
}

func (r CodeNearLabel) Extract(p Page) string {
	for i, ln := range p.Lines {
		if !strings.Contains(strings.ToUpper(ln), strings.ToUpper(r.Label)) {
			continue
		}
		for j := i + 1; j < len(p.Lines) && j <= i+r.Window; j++ {
			if r.Shape.Match(p.Lines[j]) {
				return p.Lines[j]
			}
		}
		break
	}
	for _, ln := range p.Lines {
		if r.Shape.Match(ln) {
			return ln
		}
	}
	for _, ln := range p.Lines {
		if m := r.Shape.Find(ln); m != "" {
			return m
		}
	}
	return ""
}

// FirstNonEmpty tries each rule in order and returns the first non-empty
// result.
type FirstNonEmpty []FieldRule

func (r FirstNonEmpty) Extract(p Page) string {
	for _, rule := range r {
		if out := rule.Extract(p); out != "" {
			return out
		}
	}
	return ""
}

// UppercaseLine returns the first line made only of uppercase letters,
// digits and spaces within the length bounds, skipping lines containing an
// excluded word. A last-resort job name heuristic for pages missing their
// usual anchors.
type UppercaseLine struct {
	MinLen  int
	MaxLen  int
	Exclude []string
}

func (r UppercaseLine) Extract(p Page) string {
	for _, ln := range p.Lines {
		if len(ln) < r.MinLen || len(ln) > r.MaxLen || !isUpperDigitSpace(ln) {
			continue
		}
		excluded := false
		for _, w := range r.Exclude {
			if strings.Contains(ln, w) {
				excluded = true
				break
			}
		}
		if !excluded {
			return ln
		}
	}
	return ""
}

func isUpperDigitSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != ' ' {
			return false
		}
	}
	return true
}
