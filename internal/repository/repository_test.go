package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Itsforsale2/Billdozer2/internal/domain"
)

// newTestDB opens an in-memory sqlite database with the real schema applied.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../db/migrations/0001_init.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func seedBatch(t *testing.T, db *sqlx.DB) *domain.Batch {
	t.Helper()
	b := &domain.Batch{
		ID:       uuid.New(),
		InboxDir: "/inbox",
		Status:   domain.BatchStatusRunning,
	}
	require.NoError(t, NewBatchRepo(db).Create(context.Background(), b))
	return b
}

func sampleInvoice(batchID uuid.UUID) *domain.Invoice {
	return &domain.Invoice{
		ID:            uuid.New(),
		BatchID:       batchID,
		Vendor:        "Knife River",
		InvoiceNumber: "968457",
		JobName:       "Hwy 93 Overlay",
		Date:          "09/08/25",
		Total:         "440.70",
		Page:          1,
		SourceFile:    "scan.pdf",
		OutputFile:    "KnifeRiver_Hwy93Overlay_09-08-25_968457_440.70.pdf",
		ReviewStatus:  domain.ReviewStatusPending,
		Items: []domain.InvoiceItem{
			{Description: "Base Rock", TicketNumber: "123456", TruckCode: "ABC1",
				Quantity: "12.50", UnitPrice: "9.82", ExtendedPrice: "122.75"},
			{Description: "Crushed Gravel", TicketNumber: "123457", TruckCode: "ABC2",
				Quantity: "14.10", UnitPrice: "9.82", ExtendedPrice: "138.46"},
		},
	}
}

func TestInvoiceRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	b := seedBatch(t, db)
	repo := NewInvoiceRepo(db)
	ctx := context.Background()

	inv := sampleInvoice(b.ID)
	require.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Knife River", got.Vendor)
	assert.Equal(t, "968457", got.InvoiceNumber)
	assert.Equal(t, "09/08/25", got.Date)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Base Rock", got.Items[0].Description)
	assert.Equal(t, 0, got.Items[0].Position)
	assert.Equal(t, 1, got.Items[1].Position)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestInvoiceRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepo(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceRepo_ListByBatch(t *testing.T) {
	db := newTestDB(t)
	b := seedBatch(t, db)
	other := seedBatch(t, db)
	repo := NewInvoiceRepo(db)
	ctx := context.Background()

	first := sampleInvoice(b.ID)
	require.NoError(t, repo.Create(ctx, first))

	second := sampleInvoice(b.ID)
	second.ID = uuid.New()
	second.Page = 2
	second.InvoiceNumber = "968458"
	for i := range second.Items {
		second.Items[i].ID = uuid.Nil
	}
	require.NoError(t, repo.Create(ctx, second))

	stray := sampleInvoice(other.ID)
	stray.ID = uuid.New()
	for i := range stray.Items {
		stray.Items[i].ID = uuid.Nil
	}
	require.NoError(t, repo.Create(ctx, stray))

	invs, err := repo.ListByBatch(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, 1, invs[0].Page)
	assert.Equal(t, 2, invs[1].Page)
	for _, inv := range invs {
		assert.Len(t, inv.Items, 2)
	}
}

func TestInvoiceRepo_List_VendorFilter(t *testing.T) {
	db := newTestDB(t)
	b := seedBatch(t, db)
	repo := NewInvoiceRepo(db)
	ctx := context.Background()

	kr := sampleInvoice(b.ID)
	kr.Items = nil
	require.NoError(t, repo.Create(ctx, kr))

	fw := sampleInvoice(b.ID)
	fw.ID = uuid.New()
	fw.Vendor = "Farwest"
	fw.Items = nil
	require.NoError(t, repo.Create(ctx, fw))

	invs, total, err := repo.List(ctx, "Farwest", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, invs, 1)
	assert.Equal(t, "Farwest", invs[0].Vendor)

	_, total, err = repo.List(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestInvoiceRepo_Updates(t *testing.T) {
	db := newTestDB(t)
	b := seedBatch(t, db)
	repo := NewInvoiceRepo(db)
	ctx := context.Background()

	inv := sampleInvoice(b.ID)
	inv.JobName = ""
	inv.Items = nil
	require.NoError(t, repo.Create(ctx, inv))

	t.Run("job name", func(t *testing.T) {
		require.NoError(t, repo.UpdateJobName(ctx, inv.ID, "Phase 2"))
		got, err := repo.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "Phase 2", got.JobName)
	})

	t.Run("review status", func(t *testing.T) {
		require.NoError(t, repo.UpdateReviewStatus(ctx, inv.ID, domain.ReviewStatusFlagged, "check total"))
		got, err := repo.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusFlagged, got.ReviewStatus)
		assert.Equal(t, "check total", got.ReviewerNotes)
		require.NotNil(t, got.ReviewedAt)
	})

	t.Run("missing row", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateJobName(ctx, uuid.New(), "x"), domain.ErrInvoiceNotFound)
		assert.ErrorIs(t, repo.UpdateReviewStatus(ctx, uuid.New(), domain.ReviewStatusApproved, ""), domain.ErrInvoiceNotFound)
	})
}

func TestInvoiceRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	b := seedBatch(t, db)
	repo := NewInvoiceRepo(db)
	ctx := context.Background()

	inv := sampleInvoice(b.ID)
	inv.Items = nil
	require.NoError(t, repo.Create(ctx, inv))

	require.NoError(t, repo.Delete(ctx, inv.ID))
	_, err := repo.GetByID(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, inv.ID), domain.ErrInvoiceNotFound)
}

func TestBatchRepo_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewBatchRepo(db)
	ctx := context.Background()

	b := &domain.Batch{
		ID:       uuid.New(),
		InboxDir: "/inbox",
		Status:   domain.BatchStatusRunning,
	}
	require.NoError(t, repo.Create(ctx, b))
	assert.False(t, b.StartedAt.IsZero())

	b.Status = domain.BatchStatusCompleted
	b.DocumentsTotal = 3
	b.InvoicesFound = 5
	require.NoError(t, repo.Finish(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusCompleted, got.Status)
	assert.Equal(t, 3, got.DocumentsTotal)
	assert.Equal(t, 5, got.InvoicesFound)
	require.NotNil(t, got.FinishedAt)

	batches, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, batches, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestDuplicateFinderRepo(t *testing.T) {
	db := newTestDB(t)
	b := seedBatch(t, db)
	invoices := NewInvoiceRepo(db)
	finder := NewDuplicateFinderRepo(db)
	ctx := context.Background()

	older := sampleInvoice(b.ID)
	older.Items = nil
	require.NoError(t, invoices.Create(ctx, older))

	// Second filing of the same vendor invoice, a little later.
	time.Sleep(10 * time.Millisecond)
	repeat := sampleInvoice(b.ID)
	repeat.ID = uuid.New()
	repeat.SourceFile = "rescan.pdf"
	repeat.Items = nil
	require.NoError(t, invoices.Create(ctx, repeat))

	matches, err := finder.FindDuplicates(ctx, repeat.ID, "Knife River", "968457")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "scan.pdf", matches[0].SourceFile)

	t.Run("empty invoice number never matches", func(t *testing.T) {
		matches, err := finder.FindDuplicates(ctx, uuid.New(), "Knife River", "")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("different vendor does not match", func(t *testing.T) {
		matches, err := finder.FindDuplicates(ctx, repeat.ID, "Farwest", "968457")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
