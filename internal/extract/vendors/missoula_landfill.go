package vendors

import (
	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// MissoulaLandfill scale tickets are one invoice per page and carry no
// line-item table. The 6-7 digit ticket number prints just below the
// SIGNATURE box, the total is the largest dollar amount on the page, and the
// job name follows the second (outbound) weigh date, past the scale readouts.
func MissoulaLandfill() extract.RuleSet {
	return extract.RuleSet{
		Vendor:  "Missoula Landfill",
		Key:     "missoula_landfill",
		PerPage: true,
		Fields: extract.FieldRules{
			InvoiceNumber: extract.CodeNearLabel{
				Label:  "SIGNATURE",
				Window: 4,
				Shape:  extract.DigitRun(6, 7),
			},
			Date:  extract.FirstDateOnPage{},
			Total: extract.NewMaxNumericMatch(`\$(\d{1,3}(?:,\d{3})*\.\d{2})`),
			// Short pages miss the second weigh date; fall back to the
			// first plain uppercase line that is not boilerplate.
			JobName: extract.FirstNonEmpty{
				extract.AfterNthDate{
					N:         2,
					Window:    6,
					SkipWords: []string{"GROSS", "TARE", "NET", "WEIGHT", "SCALE", "INBOUND"},
				},
				extract.UppercaseLine{
					MinLen: 3,
					MaxLen: 30,
					Exclude: []string{
						"PAYMENT", "GRANT", "CREEK", "EXCAVATING", "MISSOULA",
						"LANDFILL", "GROSS", "TARE", "NET", "WEIGHT", "INVOICE",
						"INBOUND", "SCALE", "SIGNATURE",
					},
				},
			},
		},
	}
}
