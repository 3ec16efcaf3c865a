package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"doctor-roster/internal/domain/entity"
	domainRepo "doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) domainRepo.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *entity.Department) error {
	return translateError(r.db.WithContext(ctx).Create(department).Error)
}

func (r *departmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error) {
	var department entity.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll(ctx context.Context) ([]entity.Department, error) {
	var departments []entity.Department
	if err := r.db.WithContext(ctx).Order("department ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *entity.Department) error {
	err := r.db.WithContext(ctx).
		Model(department).
		Select("department", "sub_departments").
		Updates(department).Error
	return translateError(err)
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Department{})
	return result.RowsAffected, result.Error
}

// AppendSubDepartment pushes onto the jsonb array in a single statement.
func (r *departmentRepository) AppendSubDepartment(ctx context.Context, id uuid.UUID, sub entity.SubDepartment) (int64, error) {
	if sub.Shifts == nil {
		sub.Shifts = []entity.ShiftDefinition{}
	}
	payload, err := json.Marshal([]entity.SubDepartment{sub})
	if err != nil {
		return 0, fmt.Errorf("marshal sub-department: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Department{}).
		Where("id = ?", id).
		Update("sub_departments", gorm.Expr("COALESCE(sub_departments, '[]'::jsonb) || ?::jsonb", string(payload)))
	return result.RowsAffected, result.Error
}

// AppendShift locks the department row so concurrent appends to the same
// sub-department cannot overwrite each other.
func (r *departmentRepository) AppendShift(ctx context.Context, id uuid.UUID, subDepartment string, shift entity.ShiftDefinition) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var department entity.Department
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&department).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		idx := department.SubDepartmentIndex(subDepartment)
		if idx < 0 {
			return nil
		}
		department.SubDepartments[idx].Shifts = append(department.SubDepartments[idx].Shifts, shift)

		result := tx.Model(&department).Update("sub_departments", department.SubDepartments)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}
