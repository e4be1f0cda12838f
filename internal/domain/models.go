package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceRecord is the assembled output of the extraction core for one
// invoice. Field values are raw strings exactly as they appear on the page,
// except Total which has thousands separators removed. InvoiceNumber and
// JobName may be empty when the vendor layout did not yield them.
type InvoiceRecord struct {
	Vendor        string     `json:"vendor"`
	InvoiceNumber string     `json:"invoice_number"`
	JobName       string     `json:"job_name"`
	Date          string     `json:"date"`
	Total         string     `json:"total"`
	Page          int        `json:"page"`
	SourceFile    string     `json:"source_file"`
	Items         []LineItem `json:"items"`
}

// LineItem is one extracted line-item block. TicketNumber and TruckCode are
// only set by vendors whose layouts carry them.
type LineItem struct {
	Date          string `json:"date,omitempty"`
	Description   string `json:"description"`
	TicketNumber  string `json:"ticket_number,omitempty"`
	TruckCode     string `json:"truck_code,omitempty"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	ExtendedPrice string `json:"extended_price"`
}

// Invoice is a persisted InvoiceRecord with review state.
type Invoice struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	BatchID       uuid.UUID    `db:"batch_id" json:"batch_id"`
	Vendor        string       `db:"vendor" json:"vendor"`
	InvoiceNumber string       `db:"invoice_number" json:"invoice_number"`
	JobName       string       `db:"job_name" json:"job_name"`
	Date          string       `db:"invoice_date" json:"date"`
	Total         string       `db:"total" json:"total"`
	Page          int          `db:"page" json:"page"`
	SourceFile    string       `db:"source_file" json:"source_file"`
	OutputFile    string       `db:"output_file" json:"output_file"`
	ReviewStatus  ReviewStatus `db:"review_status" json:"review_status"`
	ReviewerNotes string       `db:"reviewer_notes" json:"reviewer_notes"`
	ReviewedAt    *time.Time   `db:"reviewed_at" json:"reviewed_at"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`

	// Items is loaded alongside the invoice; it has no column of its own.
	Items []InvoiceItem `db:"-" json:"items"`
}

// InvoiceItem is a persisted LineItem, ordered by Position within its invoice.
type InvoiceItem struct {
	ID            uuid.UUID `db:"id" json:"id"`
	InvoiceID     uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Position      int       `db:"position" json:"position"`
	ItemDate      string    `db:"item_date" json:"date,omitempty"`
	Description   string    `db:"description" json:"description"`
	TicketNumber  string    `db:"ticket_number" json:"ticket_number,omitempty"`
	TruckCode     string    `db:"truck_code" json:"truck_code,omitempty"`
	Quantity      string    `db:"quantity" json:"quantity"`
	UnitPrice     string    `db:"unit_price" json:"unit_price"`
	ExtendedPrice string    `db:"extended_price" json:"extended_price"`
}

// Batch records one run over an inbox folder.
type Batch struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	InboxDir        string      `db:"inbox_dir" json:"inbox_dir"`
	Status          BatchStatus `db:"status" json:"status"`
	DocumentsTotal  int         `db:"documents_total" json:"documents_total"`
	DocumentsFailed int         `db:"documents_failed" json:"documents_failed"`
	InvoicesFound   int         `db:"invoices_found" json:"invoices_found"`
	StartedAt       time.Time   `db:"started_at" json:"started_at"`
	FinishedAt      *time.Time  `db:"finished_at" json:"finished_at"`
}

// DuplicateMatch holds enough information about an already-stored invoice
// for an actionable warning.
type DuplicateMatch struct {
	SourceFile string    `db:"source_file" json:"source_file"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
