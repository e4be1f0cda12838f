// Package export writes parsed invoice records to spreadsheet formats: a
// CSV stream for imports and an XLSX workbook that batches append into, with
// duplicate detection so re-running a folder never doubles rows.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// csvColumns defines the CSV header row, one row per invoice record.
var csvColumns = []string{
	"Vendor",
	"Invoice Number",
	"Job Name",
	"Date",
	"Total",
	"Page",
	"Source File",
	"Line Item Count",
}

// CSVWriter wraps csv.Writer for exporting invoice records as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(csvColumns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *CSVWriter) WriteRecords(records []domain.InvoiceRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func recordToRow(rec *domain.InvoiceRecord) []string {
	return []string{
		rec.Vendor,
		rec.InvoiceNumber,
		rec.JobName,
		rec.Date,
		rec.Total,
		strconv.Itoa(rec.Page),
		rec.SourceFile,
		strconv.Itoa(len(rec.Items)),
	}
}
