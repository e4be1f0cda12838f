package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/port"
)

type duplicateFinderRepo struct {
	db *sqlx.DB
}

// NewDuplicateFinderRepo creates a new sqlx-backed DuplicateInvoiceFinder.
func NewDuplicateFinderRepo(db *sqlx.DB) port.DuplicateInvoiceFinder {
	return &duplicateFinderRepo{db: db}
}

func (r *duplicateFinderRepo) FindDuplicates(
	ctx context.Context,
	excludeID uuid.UUID,
	vendor, invoiceNumber string,
) ([]domain.DuplicateMatch, error) {
	var matches []domain.DuplicateMatch
	err := r.db.SelectContext(ctx, &matches, r.db.Rebind(`
		SELECT source_file, created_at
		FROM invoices
		WHERE id != ?
		  AND vendor = ?
		  AND invoice_number = ?
		  AND invoice_number != ''
		ORDER BY created_at DESC
		LIMIT 5`),
		excludeID, vendor, invoiceNumber,
	)
	if err != nil {
		return nil, err
	}
	return matches, nil
}
