package repository

import (
	"context"

	"doctor-roster/internal/domain/entity"

	"github.com/google/uuid"
)

type ShiftRequestRepository interface {
	Create(ctx context.Context, shift *entity.ShiftRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShiftRequest, error)
	FindAll(ctx context.Context, filter *entity.ShiftRequestFilter) ([]entity.ShiftRequest, error)
	// FindForTable returns non-rejected shifts of a unit/department within the date range.
	FindForTable(ctx context.Context, filter entity.ShiftTableFilter) ([]entity.ShiftRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ShiftRequestStatus) (int64, error)
}
