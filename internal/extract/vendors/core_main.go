package vendors

import (
	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// coreMainSkip lists the junk lines that sit between the "Job Name" header
// and the actual job name on Core & Main invoices.
var coreMainSkip = []string{
	"job #",
	"job#",
	"job no",
	"job number",
	"bill of lading",
	"shipped via",
	"invoice#",
	"invoice #",
	"invoice",
	"date ordered",
	"date shipped",
}

// CoreMain invoices are one per page. Header fields are anchored: the label
// and its value sit on adjacent lines, so the rules match across the line
// break. The job name follows the "Job Name" column header after an
// unpredictable amount of junk (order codes, dates, shipping notes), and a
// page with no usable job name legitimately yields "".
func CoreMain() extract.RuleSet {
	return extract.RuleSet{
		Vendor:  "Core & Main",
		Key:     "core_main",
		PerPage: true,
		Fields: extract.FieldRules{
			InvoiceNumber: extract.NewAnchoredRegex(`(?i)Invoice\s*#\s*\n\s*([A-Z0-9]+)`, 1),
			Date:          extract.NewAnchoredRegex(`Invoice Date\s*\n\s*([0-9/]+)`, 1),
			Total:         extract.NewAnchoredRegex(`Total Amount Due\s*\n\s*\$?([0-9,]+\.[0-9]+)`, 1).CommaFree(),
			JobName: extract.LastLineBeforeLabel{
				Label:        "job name",
				Contains:     true,
				Direction:    extract.ScanForward,
				SkipPrefixes: coreMainSkip,
			},
		},
	}
}
