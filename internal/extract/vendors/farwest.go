package vendors

import (
	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// Farwest statements cover a whole document: one invoice, many load lines
// across pages. There is no header date or total; dates ride on the loads.
// A load is a 5-line block:
//
//	65.31           quantity in tons (starts the block)
//	641.34          extended price
//	10/1/2025       load date
//	3/4 Base        description
//	9.82            unit price
func Farwest() extract.RuleSet {
	return extract.RuleSet{
		Vendor:  "Farwest",
		Key:     "farwest",
		PerPage: false,
		Fields: extract.FieldRules{
			InvoiceNumber: extract.FirstLineAfterLabel{Label: "Invoice #", Fold: true},
			JobName:       extract.FirstLineAfterLabel{Label: "JOB", Fold: true},
		},
		Items: &extract.ItemWindow{
			Start: extract.IsDecimalNumber,
			Slots: []extract.Slot{
				{Field: extract.FieldQuantity, Match: extract.IsDecimalNumber},
				{Field: extract.FieldExtended, Match: extract.IsDecimalNumber},
				{Field: extract.FieldDate, Match: extract.IsDate},
				{Field: extract.FieldDescription, Match: extract.IsFreeText},
				{Field: extract.FieldUnitPrice, Match: extract.IsDecimalNumber},
			},
		},
	}
}
