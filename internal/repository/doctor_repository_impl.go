package repository

import (
	"context"
	"errors"

	"doctor-roster/internal/domain/entity"
	domainRepo "doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return translateError(r.db.WithContext(ctx).Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *doctorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Doctor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var doctors []entity.Doctor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByCareProviderCode(ctx context.Context, code string) (*entity.Doctor, error) {
	return r.findOne(ctx, "care_provider_code = ?", code)
}

func (r *doctorRepository) FindByLineID(ctx context.Context, lineID string) (*entity.Doctor, error) {
	return r.findOne(ctx, "line_id = ?", lineID)
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).Order("care_provider_code ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// Update writes every administrative field. The LINE binding and creation time are never touched here.
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	err := r.db.WithContext(ctx).
		Model(doctor).
		Select("*").
		Omit("id", "line_id", "created_at").
		Updates(doctor).Error
	return translateError(err)
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}

// BindLineID keeps line_id unique by releasing it from any previous owner in the same transaction.
func (r *doctorRepository) BindLineID(ctx context.Context, id uuid.UUID, lineID string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Doctor{}).
			Where("line_id = ? AND id <> ?", lineID, id).
			Update("line_id", nil).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.Doctor{}).Where("id = ?", id).Update("line_id", lineID)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translateError(err)
	}
	return affected, nil
}

func (r *doctorRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where(query, args...).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}
