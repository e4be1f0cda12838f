package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

const (
	invoiceSheet = "Invoices"
	loadSheet    = "Loads"
)

var invoiceHeader = []any{
	"Vendor", "Invoice Number", "Job Name", "Date", "Total", "Page", "Source File",
}

var loadHeader = []any{
	"Job Name", "Ticket", "Description", "Truck", "Date",
	"Quantity (Tons)", "Unit Price", "Extended Price",
}

// Workbook appends invoice records to an XLSX file: header rows on the
// Invoices and Loads sheets on first write, one invoice row per record and
// one load row per line item after that. A record already present in the
// workbook (same vendor, invoice number and total) is skipped, so re-running
// the same batch is safe.
type Workbook struct {
	Path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{Path: path}
}

// Append writes records into the workbook at w.Path, creating the file on
// first use. It returns the number of records actually appended after
// duplicate filtering.
func (w *Workbook) Append(records []domain.InvoiceRecord) (int, error) {
	f, err := w.open()
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	seen, err := existingKeys(f)
	if err != nil {
		return 0, err
	}
	invRow, err := nextRow(f, invoiceSheet)
	if err != nil {
		return 0, err
	}
	loadRow, err := nextRow(f, loadSheet)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, rec := range records {
		key := recordKey(rec.Vendor, rec.InvoiceNumber, rec.Total)
		if seen[key] {
			continue
		}
		seen[key] = true

		if err := setRow(f, invoiceSheet, invRow, []any{
			rec.Vendor, rec.InvoiceNumber, rec.JobName, rec.Date,
			rec.Total, rec.Page, rec.SourceFile,
		}); err != nil {
			return added, err
		}
		invRow++

		for _, it := range rec.Items {
			if err := setRow(f, loadSheet, loadRow, []any{
				rec.JobName, it.TicketNumber, it.Description, it.TruckCode,
				it.Date, it.Quantity, it.UnitPrice, it.ExtendedPrice,
			}); err != nil {
				return added, err
			}
			loadRow++
		}
		added++
	}

	if err := f.SaveAs(w.Path); err != nil {
		return added, fmt.Errorf("save workbook %s: %w", w.Path, err)
	}
	return added, nil
}

// open loads the existing workbook or builds a fresh one with both sheets
// and their header rows.
func (w *Workbook) open() (*excelize.File, error) {
	if _, err := os.Stat(w.Path); err == nil {
		f, err := excelize.OpenFile(w.Path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", w.Path, err)
		}
		return f, nil
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(loadSheet); err != nil {
		return nil, err
	}
	if err := setRow(f, invoiceSheet, 1, invoiceHeader); err != nil {
		return nil, err
	}
	if err := setRow(f, loadSheet, 1, loadHeader); err != nil {
		return nil, err
	}
	return f, nil
}

// existingKeys collects the duplicate keys of every invoice row already in
// the workbook.
func existingKeys(f *excelize.File) (map[string]bool, error) {
	rows, err := f.GetRows(invoiceSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", invoiceSheet, err)
	}
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		seen[recordKey(cell(row, 0), cell(row, 1), cell(row, 4))] = true
	}
	return seen, nil
}

func nextRow(f *excelize.File, sheet string) (int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read %s sheet: %w", sheet, err)
	}
	return len(rows) + 1, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cellName, &values)
}

func recordKey(vendor, invoice, total string) string {
	return strings.Join([]string{vendor, invoice, total}, "|")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
