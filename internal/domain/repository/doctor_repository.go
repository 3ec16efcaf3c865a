package repository

import (
	"context"

	"doctor-roster/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Doctor, error)
	FindByCareProviderCode(ctx context.Context, code string) (*entity.Doctor, error)
	FindByLineID(ctx context.Context, lineID string) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// BindLineID moves lineID onto the doctor, clearing it from any other record.
	BindLineID(ctx context.Context, id uuid.UUID, lineID string) (int64, error)
}
