package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Itsforsale2/Billdozer2/internal/config"
	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/mocks"
)

func TestInvoiceService_List(t *testing.T) {
	t.Run("clamps limit and offset", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		repo.On("List", mock.Anything, "", 0, 50).Return([]domain.Invoice{}, 0, nil)

		_, _, err := svc.List(context.Background(), "", -3, 5000)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("passes vendor filter through", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		repo.On("List", mock.Anything, "Knife River", 20, 10).
			Return([]domain.Invoice{{Vendor: "Knife River"}}, 21, nil)

		out, total, err := svc.List(context.Background(), "Knife River", 20, 10)
		require.NoError(t, err)
		assert.Equal(t, 21, total)
		require.Len(t, out, 1)
	})
}

func TestInvoiceService_AssignJobName(t *testing.T) {
	id := uuid.New()

	t.Run("rejects empty name", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		err := svc.AssignJobName(context.Background(), id, "   ")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdateJobName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("trims before storing", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		repo.On("UpdateJobName", mock.Anything, id, "Hwy 93 Overlay").Return(nil)

		require.NoError(t, svc.AssignJobName(context.Background(), id, "  Hwy 93 Overlay "))
		repo.AssertExpectations(t)
	})
}

func TestInvoiceService_Review(t *testing.T) {
	id := uuid.New()

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		err := svc.Review(context.Background(), id, domain.ReviewStatus("shredded"), "")
		assert.Error(t, err)
	})

	t.Run("stores valid status with notes", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		repo.On("UpdateReviewStatus", mock.Anything, id, domain.ReviewStatusApproved, "looks right").Return(nil)

		require.NoError(t, svc.Review(context.Background(), id, domain.ReviewStatusApproved, "looks right"))
		repo.AssertExpectations(t)
	})
}

func TestInvoiceService_FindDuplicates(t *testing.T) {
	id := uuid.New()

	t.Run("skips lookup when invoice has no number", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		dupes := new(mocks.MockDuplicateInvoiceFinder)
		svc := NewInvoiceService(repo, dupes, nil, config.ArchiveConfig{})

		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Invoice{ID: id, Vendor: "Farwest"}, nil)

		out, err := svc.FindDuplicates(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, out)
		dupes.AssertNotCalled(t, "FindDuplicates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns matches", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		dupes := new(mocks.MockDuplicateInvoiceFinder)
		svc := NewInvoiceService(repo, dupes, nil, config.ArchiveConfig{})

		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Invoice{ID: id, Vendor: "Knife River", InvoiceNumber: "968457"}, nil)
		dupes.On("FindDuplicates", mock.Anything, id, "Knife River", "968457").
			Return([]domain.DuplicateMatch{{SourceFile: "old.pdf"}}, nil)

		out, err := svc.FindDuplicates(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "old.pdf", out[0].SourceFile)
	})

	t.Run("missing invoice surfaces not found", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)

		_, err := svc.FindDuplicates(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	id := uuid.New()
	archCfg := config.ArchiveConfig{Bucket: "billdozer-archive", Prefix: "invoices"}

	t.Run("removes row and archived copy", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		store := new(mocks.MockObjectStorage)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), store, archCfg)

		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Invoice{ID: id, OutputFile: "/out/KnifeRiver_968457.pdf"}, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)
		store.On("Delete", mock.Anything, "billdozer-archive", "invoices/KnifeRiver_968457.pdf").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), id))
		repo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("archive failure does not surface", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		store := new(mocks.MockObjectStorage)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), store, archCfg)

		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Invoice{ID: id, OutputFile: "/out/KnifeRiver_968457.pdf"}, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)
		store.On("Delete", mock.Anything, "billdozer-archive", "invoices/KnifeRiver_968457.pdf").
			Return(errors.New("bucket unreachable"))

		assert.NoError(t, svc.Delete(context.Background(), id))
	})

	t.Run("missing invoice surfaces not found", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)

		err := svc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestInvoiceService_ArchiveURL(t *testing.T) {
	id := uuid.New()

	t.Run("returns presigned link", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		store := new(mocks.MockObjectStorage)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), store,
			config.ArchiveConfig{Bucket: "billdozer-archive", Prefix: "invoices"})

		repo.On("GetByID", mock.Anything, id).
			Return(&domain.Invoice{ID: id, OutputFile: "/out/Farwest_102993.pdf"}, nil)
		store.On("GetPresignedURL", mock.Anything, "billdozer-archive", "invoices/Farwest_102993.pdf", int64(900)).
			Return("https://minio.local/presigned", nil)

		url, err := svc.ArchiveURL(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "https://minio.local/presigned", url)
		store.AssertExpectations(t)
	})

	t.Run("disabled archive is a conflict", func(t *testing.T) {
		repo := new(mocks.MockInvoiceRepository)
		svc := NewInvoiceService(repo, new(mocks.MockDuplicateInvoiceFinder), nil, config.ArchiveConfig{})

		_, err := svc.ArchiveURL(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrArchiveDisabled)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
