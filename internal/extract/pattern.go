package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher is a total predicate over a single trimmed line. Matchers never
// fail on malformed input; absence of a match is simply false.
type Matcher func(line string) bool

var (
	decimalPattern    = regexp.MustCompile(`^\d+(\.\d+)?$`)
	dateFullPattern   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	dateSearchPattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	moneyPattern      = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*\.\d{2}$`)
	unitPricePattern  = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)
	extendedPattern   = regexp.MustCompile(`^\d+\.\d{2}$`)
	bareCodePattern   = regexp.MustCompile(`^[A-Z0-9]{6,}$`)
)

// IsDecimalNumber reports whether the whole line is a plain decimal number
// with an optional fractional part, e.g. "65.31" or "14".
func IsDecimalNumber(line string) bool {
	return decimalPattern.MatchString(line)
}

// IsDate reports whether the whole line is a MM/DD/YYYY or MM/DD/YY date.
func IsDate(line string) bool {
	return dateFullPattern.MatchString(line)
}

// FindDate returns the first MM/DD/YYYY or MM/DD/YY substring of the line,
// or "" when none is present.
func FindDate(line string) string {
	return dateSearchPattern.FindString(line)
}

// IsMoney reports whether the whole line is a monetary amount with exactly
// two decimal digits and optional thousands separators.
func IsMoney(line string) bool {
	return moneyPattern.MatchString(line)
}

// IsUnitPrice reports whether the line is a number with up to four decimal
// digits, the shape vendors use for per-unit rates.
func IsUnitPrice(line string) bool {
	return unitPricePattern.MatchString(line)
}

// IsExtendedPrice reports whether the line is a number with exactly two
// decimal digits.
func IsExtendedPrice(line string) bool {
	return extendedPattern.MatchString(line)
}

// IsFreeText reports whether the line is descriptive text: non-empty and not
// a bare number, date, or money amount. Used for description slots, which
// never hold numeric values on any supported layout.
func IsFreeText(line string) bool {
	if line == "" {
		return false
	}
	return !IsDecimalNumber(line) && !IsDate(line) && !IsMoney(line)
}

// CodeShape is a compiled pattern for vendor-defined identifier shapes, such
// as truck codes or ticket numbers. It matches whole lines or, at word
// boundaries, substrings within a line.
type CodeShape struct {
	re     *regexp.Regexp
	search *regexp.Regexp
}

func newCodeShape(body string) CodeShape {
	return CodeShape{
		re:     regexp.MustCompile(`^` + body + `$`),
		search: regexp.MustCompile(`\b` + body + `\b`),
	}
}

// LettersDigits returns a CodeShape matching exactly `letters` uppercase
// letters followed by `digits` digits, e.g. LettersDigits(3, 1) for "ABC1".
func LettersDigits(letters, digits int) CodeShape {
	return newCodeShape(fmt.Sprintf(`[A-Z]{%d}\d{%d}`, letters, digits))
}

// DigitRun returns a CodeShape matching a bare integer of min..max digits.
// max <= 0 means unbounded.
func DigitRun(min, max int) CodeShape {
	if max <= 0 {
		return newCodeShape(fmt.Sprintf(`\d{%d,}`, min))
	}
	return newCodeShape(fmt.Sprintf(`\d{%d,%d}`, min, max))
}

// Match reports whether the whole line matches the shape.
func (s CodeShape) Match(line string) bool {
	return s.re.MatchString(line)
}

// Find returns the first boundary-delimited substring of the line matching
// the shape, or "".
func (s CodeShape) Find(line string) string {
	return s.search.FindString(line)
}

// DecimalWithUnit returns a Matcher for a decimal number followed by an
// optional unit suffix, e.g. "12.50 TN". Matching is case-insensitive.
func DecimalWithUnit(unit string) Matcher {
	re := regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*` + regexp.QuoteMeta(unit) + `$`)
	return re.MatchString
}

// isBareCode reports whether the line is an uninterrupted run of six or more
// uppercase letters and digits, the shape of invoice numbers and order codes
// that must never be mistaken for a job name.
func isBareCode(line string) bool {
	return bareCodePattern.MatchString(line)
}

// foldEqual reports case-insensitive equality of two trimmed lines.
func foldEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
