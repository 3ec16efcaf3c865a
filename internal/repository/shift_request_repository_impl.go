package repository

import (
	"context"
	"errors"

	"doctor-roster/internal/domain/entity"
	domainRepo "doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shiftRequestRepository struct {
	db *gorm.DB
}

func NewShiftRequestRepository(db *gorm.DB) domainRepo.ShiftRequestRepository {
	return &shiftRequestRepository{db: db}
}

func (r *shiftRequestRepository) Create(ctx context.Context, shift *entity.ShiftRequest) error {
	return translateError(r.db.WithContext(ctx).Create(shift).Error)
}

func (r *shiftRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShiftRequest, error) {
	var shift entity.ShiftRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRequestRepository) FindAll(ctx context.Context, filter *entity.ShiftRequestFilter) ([]entity.ShiftRequest, error) {
	query := r.db.WithContext(ctx)
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Date != nil {
			query = query.Where("date = ?", *filter.Date)
		}
	}

	var shifts []entity.ShiftRequest
	if err := query.Order("date ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRequestRepository) FindForTable(ctx context.Context, filter entity.ShiftTableFilter) ([]entity.ShiftRequest, error) {
	var shifts []entity.ShiftRequest
	err := r.db.WithContext(ctx).
		Where("ipus = ? AND department = ?", filter.Ipus, filter.Department).
		Where("date >= ? AND date <= ?", filter.StartDate, filter.EndDate).
		Where("status <> ?", entity.ShiftRequestStatusRejected).
		Order("date ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ShiftRequestStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.ShiftRequest{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}
