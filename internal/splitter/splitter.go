// Package splitter writes one output PDF per parsed invoice record and names
// it from the record's fields, so a folder of renamed single-invoice PDFs can
// be filed without opening them.
package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

var illegalChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// cleanComponent prepares one field for use inside a filename: slashes become
// hyphens (dates keep their shape), spaces are dropped, and anything a
// filesystem would reject is stripped.
func cleanComponent(v string) string {
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, "/", "-")
	v = strings.ReplaceAll(v, " ", "")
	return illegalChars.ReplaceAllString(v, "")
}

// Filename builds the output name for a record:
// Vendor_Job_Date_Invoice_Total.pdf. Empty fields drop out of the name,
// except the invoice number, which falls back to "NOINV" so two records
// missing different fields cannot collapse onto the same name as easily.
func Filename(rec domain.InvoiceRecord) string {
	invoice := cleanComponent(rec.InvoiceNumber)
	if invoice == "" {
		invoice = "NOINV"
	}

	parts := make([]string, 0, 5)
	for _, p := range []string{
		cleanComponent(rec.Vendor),
		cleanComponent(rec.JobName),
		cleanComponent(rec.Date),
		invoice,
		cleanComponent(rec.Total),
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_") + ".pdf"
}

// Splitter extracts single pages (or whole documents) into an output folder.
type Splitter struct{}

func New() *Splitter {
	return &Splitter{}
}

// SplitPage writes the record's page of the source PDF to outDir under the
// record's built filename and returns the written path. An existing file with
// the same name is never overwritten; a numeric suffix is appended instead.
func (s *Splitter) SplitPage(srcPath string, rec domain.InvoiceRecord, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}
	dst := uniquePath(filepath.Join(outDir, Filename(rec)))

	pages := []string{strconv.Itoa(rec.Page)}
	if err := api.TrimFile(srcPath, dst, pages, nil); err != nil {
		return "", fmt.Errorf("extract page %d of %s: %w", rec.Page, srcPath, err)
	}
	return dst, nil
}

// CopyDocument writes the whole source PDF to outDir under the record's
// built filename, for vendors whose statements span every page.
func (s *Splitter) CopyDocument(srcPath string, rec domain.InvoiceRecord, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}
	dst := uniquePath(filepath.Join(outDir, Filename(rec)))

	in, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("copy %s: %w", srcPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dst, err)
	}
	return dst, nil
}

// uniquePath returns path, or path with a _2, _3, ... suffix when the name is
// already taken.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		next := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(next); os.IsNotExist(err) {
			return next
		}
	}
}
