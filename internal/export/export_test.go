package export_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/export"
)

func sampleRecord() domain.InvoiceRecord {
	return domain.InvoiceRecord{
		Vendor:        "Knife River",
		InvoiceNumber: "968457",
		JobName:       "Hwy 93 Overlay",
		Date:          "09/08/25",
		Total:         "440.70",
		Page:          1,
		SourceFile:    "kr.pdf",
		Items: []domain.LineItem{
			{
				TicketNumber:  "123456",
				Description:   "Base Rock",
				TruckCode:     "ABC1",
				Quantity:      "12.50",
				UnitPrice:     "9.82",
				ExtendedPrice: "122.75",
			},
		},
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords([]domain.InvoiceRecord{sampleRecord()}))
	w.Flush()
	require.NoError(t, w.Error())

	out := buf.String()
	assert.Contains(t, out, "Vendor,Invoice Number,Job Name,Date,Total,Page,Source File,Line Item Count")
	assert.Contains(t, out, "Knife River,968457,Hwy 93 Overlay,09/08/25,440.70,1,kr.pdf,1")
}

func TestWorkbookAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	wb := export.NewWorkbook(path)

	added, err := wb.Append([]domain.InvoiceRecord{sampleRecord()})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	invRows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, invRows, 2, "header plus one invoice row")
	assert.Equal(t, "Knife River", invRows[1][0])
	assert.Equal(t, "968457", invRows[1][1])
	assert.Equal(t, "440.70", invRows[1][4])

	loadRows, err := f.GetRows("Loads")
	require.NoError(t, err)
	require.Len(t, loadRows, 2, "header plus one load row")
	assert.Equal(t, "123456", loadRows[1][1])
	assert.Equal(t, "ABC1", loadRows[1][3])
}

func TestWorkbookAppend_SkipsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	wb := export.NewWorkbook(path)

	_, err := wb.Append([]domain.InvoiceRecord{sampleRecord()})
	require.NoError(t, err)

	// Same vendor + invoice number + total appended again, plus one new
	// record; only the new one lands.
	other := sampleRecord()
	other.InvoiceNumber = "940775"
	other.Items = nil

	added, err := wb.Append([]domain.InvoiceRecord{sampleRecord(), other})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	invRows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	assert.Len(t, invRows, 3)

	loadRows, err := f.GetRows("Loads")
	require.NoError(t, err)
	assert.Len(t, loadRows, 2, "duplicate's items were not re-appended")
}

func TestWorkbookAppend_DuplicateWithinOneBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	wb := export.NewWorkbook(path)

	added, err := wb.Append([]domain.InvoiceRecord{sampleRecord(), sampleRecord()})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}
