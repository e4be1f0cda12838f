package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new sqlx-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// Create stores the invoice and its line items in one transaction. Item rows
// keep their extraction order through the position column.
func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := r.db.Rebind(`INSERT INTO invoices (
		id, batch_id, vendor, invoice_number, job_name, invoice_date,
		total, page, source_file, output_file,
		review_status, reviewer_notes, reviewed_at, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, query,
		inv.ID, inv.BatchID, inv.Vendor, inv.InvoiceNumber, inv.JobName, inv.Date,
		inv.Total, inv.Page, inv.SourceFile, inv.OutputFile,
		inv.ReviewStatus, inv.ReviewerNotes, inv.ReviewedAt, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	itemQuery := r.db.Rebind(`INSERT INTO invoice_items (
		id, invoice_id, position, item_date, description,
		ticket_number, truck_code, quantity, unit_price, extended_price
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	for i := range inv.Items {
		it := &inv.Items[i]
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.InvoiceID = inv.ID
		it.Position = i
		_, err = tx.ExecContext(ctx, itemQuery,
			it.ID, it.InvoiceID, it.Position, it.ItemDate, it.Description,
			it.TicketNumber, it.TruckCode, it.Quantity, it.UnitPrice, it.ExtendedPrice)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create item %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		r.db.Rebind("SELECT * FROM invoices WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &inv.Items,
		r.db.Rebind("SELECT * FROM invoice_items WHERE invoice_id = ? ORDER BY position"), id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]domain.Invoice, error) {
	var invs []domain.Invoice
	err := r.db.SelectContext(ctx, &invs,
		r.db.Rebind(`SELECT * FROM invoices WHERE batch_id = ?
		 ORDER BY source_file, page`), batchID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByBatch: %w", err)
	}

	// One items query for the whole batch, grouped back onto the invoices.
	var items []domain.InvoiceItem
	err = r.db.SelectContext(ctx, &items,
		r.db.Rebind(`SELECT invoice_items.* FROM invoice_items
		 JOIN invoices ON invoices.id = invoice_items.invoice_id
		 WHERE invoices.batch_id = ?
		 ORDER BY invoice_items.invoice_id, invoice_items.position`), batchID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByBatch items: %w", err)
	}
	byInvoice := make(map[uuid.UUID][]domain.InvoiceItem, len(invs))
	for _, it := range items {
		byInvoice[it.InvoiceID] = append(byInvoice[it.InvoiceID], it)
	}
	for i := range invs {
		invs[i].Items = byInvoice[invs[i].ID]
	}
	return invs, nil
}

func (r *invoiceRepo) List(ctx context.Context, vendor string, offset, limit int) ([]domain.Invoice, int, error) {
	where := ""
	args := []any{}
	if vendor != "" {
		where = " WHERE vendor = ?"
		args = append(args, vendor)
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		r.db.Rebind("SELECT COUNT(*) FROM invoices"+where), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var invs []domain.Invoice
	err = r.db.SelectContext(ctx, &invs,
		r.db.Rebind("SELECT * FROM invoices"+where+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?"),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invs, total, nil
}

func (r *invoiceRepo) UpdateJobName(ctx context.Context, id uuid.UUID, jobName string) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE invoices SET job_name = ?, updated_at = ? WHERE id = ?"),
		jobName, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateJobName: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateReviewStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE invoices SET
			review_status = ?, reviewer_notes = ?, reviewed_at = ?, updated_at = ?
		 WHERE id = ?`),
		status, notes, now, now, id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateReviewStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM invoices WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
