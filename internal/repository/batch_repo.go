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

type batchRepo struct {
	db *sqlx.DB
}

// NewBatchRepo creates a new sqlx-backed BatchRepository.
func NewBatchRepo(db *sqlx.DB) port.BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) Create(ctx context.Context, b *domain.Batch) error {
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO batches (
			id, inbox_dir, status, documents_total, documents_failed,
			invoices_found, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		b.ID, b.InboxDir, b.Status, b.DocumentsTotal, b.DocumentsFailed,
		b.InvoicesFound, b.StartedAt, b.FinishedAt)
	if err != nil {
		return fmt.Errorf("batchRepo.Create: %w", err)
	}
	return nil
}

func (r *batchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	var b domain.Batch
	err := r.db.GetContext(ctx, &b,
		r.db.Rebind("SELECT * FROM batches WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, fmt.Errorf("batchRepo.GetByID: %w", err)
	}
	return &b, nil
}

func (r *batchRepo) List(ctx context.Context, offset, limit int) ([]domain.Batch, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM batches")
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.List count: %w", err)
	}

	var batches []domain.Batch
	err = r.db.SelectContext(ctx, &batches,
		r.db.Rebind(`SELECT * FROM batches
		 ORDER BY started_at DESC LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.List: %w", err)
	}
	return batches, total, nil
}

// Finish records the batch's final counters and status.
func (r *batchRepo) Finish(ctx context.Context, b *domain.Batch) error {
	if b.FinishedAt == nil {
		now := time.Now().UTC()
		b.FinishedAt = &now
	}
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE batches SET
			status = ?, documents_total = ?, documents_failed = ?,
			invoices_found = ?, finished_at = ?
		 WHERE id = ?`),
		b.Status, b.DocumentsTotal, b.DocumentsFailed,
		b.InvoicesFound, b.FinishedAt, b.ID)
	if err != nil {
		return fmt.Errorf("batchRepo.Finish: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}
