// Package vendors holds the built-in per-vendor rule sets. Each vendor owns
// one fixed, immutable mapping from header fields to field rules plus, where
// the layout has repeating line-item blocks, an item window spec. Rule sets
// are data, not code: they can be listed, previewed and tested independently
// of the engine that runs them.
package vendors

import (
	"strings"

	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// KnifeRiver invoices arrive one invoice per page. The invoice number is the
// first bare 6+ digit line, the date the first MM/DD/YY on the page, and the
// grand total is always the last money amount printed. The job name sits one
// or two lines above the "ORIGINAL" stamp. Hauls are 6-line blocks:
//
//	968457          ticket number (starts the block)
//	Base Rock       description
//	ABC1            truck code
//	12.50 TN        quantity in tons
//	9.82            unit price
//	122.75          extended price
func KnifeRiver() extract.RuleSet {
	return extract.RuleSet{
		Vendor:  "Knife River",
		Key:     "knife_river",
		PerPage: true,
		Fields: extract.FieldRules{
			InvoiceNumber: extract.FirstLineMatching{Match: extract.DigitRun(6, 0).Match},
			Date:          extract.FirstDateOnPage{},
			Total:         extract.NewLastNumericMatch(""),
			JobName: extract.LastLineBeforeLabel{
				Label:     "ORIGINAL",
				Direction: extract.ScanBackward,
				MaxScan:   2,
				SkipWords: []string{"INVOICE", "TICKET", "PAYABLE COPY", "SUBTOTAL", "TOTAL"},
			},
		},
		Items: &extract.ItemWindow{
			Start: extract.DigitRun(5, 7).Match,
			Slots: []extract.Slot{
				{Field: extract.FieldTicket, Match: extract.DigitRun(5, 7).Match},
				{Field: extract.FieldDescription, Match: extract.IsFreeText},
				{Field: extract.FieldTruck, Match: extract.LettersDigits(3, 1).Match},
				{Field: extract.FieldQuantity, Match: extract.DecimalWithUnit("TN"), Clean: stripUnit("TN")},
				{Field: extract.FieldUnitPrice, Match: extract.IsUnitPrice},
				{Field: extract.FieldExtended, Match: extract.IsExtendedPrice},
			},
			Noise: []string{
				"item", "description", "special", "instructions",
				"subtotal", "total", "sales", "discount",
				"taxable", "nontaxable", "kr-mtn", "quantity",
			},
		},
	}
}

// stripUnit removes a trailing unit suffix like "TN" and surrounding
// whitespace from a quantity line.
func stripUnit(unit string) func(string) string {
	return func(s string) string {
		s = strings.TrimSpace(s)
		if n := len(s) - len(unit); n >= 0 && strings.EqualFold(s[n:], unit) {
			s = strings.TrimSpace(s[:n])
		}
		return s
	}
}
