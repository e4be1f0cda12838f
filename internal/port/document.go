package port

import (
	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/extract"
)

// PageSource turns a document on disk into line-oriented pages.
type PageSource interface {
	Pages(path string) ([]extract.Page, error)
}

// DocumentSplitter writes single-invoice PDFs named from their record.
type DocumentSplitter interface {
	SplitPage(srcPath string, rec domain.InvoiceRecord, outDir string) (string, error)
	CopyDocument(srcPath string, rec domain.InvoiceRecord, outDir string) (string, error)
}
