package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Itsforsale2/Billdozer2/internal/batch"
	"github.com/Itsforsale2/Billdozer2/internal/domain"
	"github.com/Itsforsale2/Billdozer2/internal/port"
)

// BatchService runs and inspects batch intake runs.
type BatchService interface {
	Run(ctx context.Context) (*domain.Batch, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Batch, error)
	List(ctx context.Context, offset, limit int) ([]domain.Batch, int, error)
}

type batchService struct {
	processor *batch.Processor
	batches   port.BatchRepository
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(processor *batch.Processor, batches port.BatchRepository) BatchService {
	return &batchService{processor: processor, batches: batches}
}

func (s *batchService) Run(ctx context.Context) (*domain.Batch, error) {
	return s.processor.Run(ctx)
}

func (s *batchService) Get(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	return s.batches.GetByID(ctx, id)
}

func (s *batchService) List(ctx context.Context, offset, limit int) ([]domain.Batch, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.batches.List(ctx, offset, limit)
}
