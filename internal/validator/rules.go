package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// Extended prices are checked against quantity times unit price to the cent,
// with a small allowance for per-line rounding on the printed invoice.
const mathTolerance = 0.05

var (
	datePattern  = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	moneyPattern = regexp.MustCompile(`^\d+\.\d{2}$`)
)

// rule is a Validator backed by a closure.
type rule struct {
	key      string
	name     string
	validate func(*domain.InvoiceRecord) []Result
}

func (r *rule) RuleKey() string  { return r.key }
func (r *rule) RuleName() string { return r.name }

func (r *rule) Validate(rec *domain.InvoiceRecord) []Result {
	return r.validate(rec)
}

func result(key string, passed bool, fieldPath, expected, actual, failMsg string) Result {
	msg := fieldPath + " ok"
	if !passed {
		msg = failMsg
	}
	return Result{
		RuleKey: key, Passed: passed, FieldPath: fieldPath,
		Expected: expected, Actual: actual, Message: msg,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= mathTolerance
}

func fmtf(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// BuiltinRules returns every built-in record rule.
func BuiltinRules() []Validator {
	return []Validator{
		&rule{
			key: "required.invoice_number", name: "Required: Invoice Number",
			validate: func(rec *domain.InvoiceRecord) []Result {
				passed := rec.InvoiceNumber != ""
				return []Result{result("required.invoice_number", passed,
					"invoice_number", "non-empty", rec.InvoiceNumber,
					"no invoice number was extracted")}
			},
		},
		&rule{
			key: "required.total", name: "Required: Total",
			validate: func(rec *domain.InvoiceRecord) []Result {
				passed := rec.Total != ""
				return []Result{result("required.total", passed,
					"total", "non-empty", rec.Total,
					"no total was extracted")}
			},
		},
		&rule{
			key: "format.date", name: "Format: Invoice Date",
			validate: func(rec *domain.InvoiceRecord) []Result {
				// An absent date is the required rules' concern, not a
				// format failure.
				passed := rec.Date == "" || datePattern.MatchString(rec.Date)
				return []Result{result("format.date", passed,
					"date", "M/D/YY or M/D/YYYY", rec.Date,
					fmt.Sprintf("date %q is not a recognised date", rec.Date))}
			},
		},
		&rule{
			key: "format.total", name: "Format: Total",
			validate: func(rec *domain.InvoiceRecord) []Result {
				passed := rec.Total == "" || moneyPattern.MatchString(rec.Total)
				return []Result{result("format.total", passed,
					"total", "amount with two decimals", rec.Total,
					fmt.Sprintf("total %q is not a money amount", rec.Total))}
			},
		},
		&rule{
			key: "math.line_item.extended_price", name: "Math: Line Item Extended Price",
			validate: func(rec *domain.InvoiceRecord) []Result {
				results := make([]Result, 0, len(rec.Items))
				for i := range rec.Items {
					item := &rec.Items[i]
					fp := fmt.Sprintf("items[%d].extended_price", i)

					qty, err1 := strconv.ParseFloat(item.Quantity, 64)
					unit, err2 := strconv.ParseFloat(item.UnitPrice, 64)
					ext, err3 := strconv.ParseFloat(item.ExtendedPrice, 64)
					if err1 != nil || err2 != nil || err3 != nil {
						// Non-numeric pieces are caught by the window's own
						// slot validation; nothing to multiply here.
						continue
					}

					expected := qty * unit
					passed := approxEqual(ext, expected)
					results = append(results, result("math.line_item.extended_price", passed,
						fp, fmtf(expected), fmtf(ext),
						fmt.Sprintf("%s: %s x %s = %s, invoice prints %s",
							fp, item.Quantity, item.UnitPrice, fmtf(expected), item.ExtendedPrice)))
				}
				return results
			},
		},
	}
}
