package extract

import (
	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// ParseDocument resolves the vendor's rule set and applies it to every page
// of one document, assembling invoice records in page order. It always
// returns an ordered slice, even when exactly one record results; unwrapping
// a singleton is the caller's presentation concern.
//
// The only failure mode is an unregistered vendor key. Missing fields and
// malformed item blocks degrade to empty values and absent items, so a badly
// formatted invoice still yields a usable partial record.
func ParseDocument(reg *Registry, vendorKey string, pages []Page) ([]domain.InvoiceRecord, error) {
	rs, err := reg.Resolve(vendorKey)
	if err != nil {
		return nil, err
	}
	if rs.PerPage {
		return assemblePerPage(rs, pages), nil
	}
	return assemblePerDocument(rs, pages), nil
}

// assemblePerPage treats each page as a complete invoice.
func assemblePerPage(rs RuleSet, pages []Page) []domain.InvoiceRecord {
	records := make([]domain.InvoiceRecord, 0, len(pages))
	for _, p := range pages {
		rec := domain.InvoiceRecord{
			Vendor:        rs.Vendor,
			InvoiceNumber: applyRule(rs.Fields.InvoiceNumber, p),
			JobName:       applyRule(rs.Fields.JobName, p),
			Date:          applyRule(rs.Fields.Date, p),
			Total:         applyRule(rs.Fields.Total, p),
			Page:          p.Number,
			SourceFile:    p.DocID,
		}
		if rs.Items != nil {
			rec.Items = rs.Items.Extract(p)
		}
		records = append(records, rec)
	}
	return records
}

// assemblePerDocument aggregates the whole document into one record: the
// first non-empty value per field wins, items accumulate across pages in
// page order.
func assemblePerDocument(rs RuleSet, pages []Page) []domain.InvoiceRecord {
	if len(pages) == 0 {
		return []domain.InvoiceRecord{}
	}
	rec := domain.InvoiceRecord{
		Vendor:     rs.Vendor,
		Page:       pages[0].Number,
		SourceFile: pages[0].DocID,
	}
	for _, p := range pages {
		if rec.InvoiceNumber == "" {
			rec.InvoiceNumber = applyRule(rs.Fields.InvoiceNumber, p)
		}
		if rec.JobName == "" {
			rec.JobName = applyRule(rs.Fields.JobName, p)
		}
		if rec.Date == "" {
			rec.Date = applyRule(rs.Fields.Date, p)
		}
		if rec.Total == "" {
			rec.Total = applyRule(rs.Fields.Total, p)
		}
		if rs.Items != nil {
			rec.Items = append(rec.Items, rs.Items.Extract(p)...)
		}
	}
	return []domain.InvoiceRecord{rec}
}

func applyRule(r FieldRule, p Page) string {
	if r == nil {
		return ""
	}
	return r.Extract(p)
}
