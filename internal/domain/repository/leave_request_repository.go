package repository

import (
	"context"
	"time"

	"doctor-roster/internal/domain/entity"

	"github.com/google/uuid"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, leave *entity.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LeaveRequest, error)
	FindAll(ctx context.Context, filter *entity.LeaveFilter) ([]entity.LeaveRequest, error)
	FindOverlapping(ctx context.Context, filter entity.LeaveOverlapFilter) ([]entity.LeaveRequest, error)
	Update(ctx context.Context, leave *entity.LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, status entity.LeaveStatus, approver string, decidedAt time.Time) (int64, error)

	// ClaimReplacement atomically marks claim.DoctorID as the winning candidate.
	// It only succeeds while the leave is waiting_replacement and the candidate is
	// still pending; otherwise nothing is written and 0 is returned.
	ClaimReplacement(ctx context.Context, claim entity.ReplacementClaim) (int64, error)
}
