package repository

import (
	"context"

	"doctor-roster/internal/domain/entity"

	"github.com/google/uuid"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Department, error)
	FindAll(ctx context.Context) ([]entity.Department, error)
	Update(ctx context.Context, department *entity.Department) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	AppendSubDepartment(ctx context.Context, id uuid.UUID, sub entity.SubDepartment) (int64, error)
	// AppendShift returns 0 affected rows when the department or sub-department is gone.
	AppendShift(ctx context.Context, id uuid.UUID, subDepartment string, shift entity.ShiftDefinition) (int64, error)
}
