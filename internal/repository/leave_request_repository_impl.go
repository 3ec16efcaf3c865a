package repository

import (
	"context"
	"errors"
	"time"

	"doctor-roster/internal/domain/entity"
	domainRepo "doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errClaimLost aborts the claim transaction when the compare-and-swap matched nothing
var errClaimLost = errors.New("replacement claim lost")

type leaveRequestRepository struct {
	db *gorm.DB
}

func NewLeaveRequestRepository(db *gorm.DB) domainRepo.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

// Create inserts the leave and its candidates (GORM association) in one transaction.
func (r *leaveRequestRepository) Create(ctx context.Context, leave *entity.LeaveRequest) error {
	return translateError(r.db.WithContext(ctx).Create(leave).Error)
}

func (r *leaveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LeaveRequest, error) {
	var leave entity.LeaveRequest
	err := r.withCandidates(r.db.WithContext(ctx)).Where("id = ?", id).First(&leave).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRequestRepository) FindAll(ctx context.Context, filter *entity.LeaveFilter) ([]entity.LeaveRequest, error) {
	query := r.withCandidates(r.db.WithContext(ctx))
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
	}

	var leaves []entity.LeaveRequest
	if err := query.Order("created_at DESC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRequestRepository) FindOverlapping(ctx context.Context, filter entity.LeaveOverlapFilter) ([]entity.LeaveRequest, error) {
	query := r.withCandidates(r.db.WithContext(ctx)).
		Where("start_date <= ? AND end_date >= ?", filter.EndDate, filter.StartDate)

	if filter.Ipus != "" {
		query = query.Where("ipus = ?", filter.Ipus)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if len(filter.DoctorIDs) > 0 {
		query = query.Where("doctor_id IN ?", filter.DoctorIDs)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	var leaves []entity.LeaveRequest
	if err := query.Order("start_date ASC").Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// Update applies an administrative edit. Candidates and the accepted_by snapshot are not editable.
func (r *leaveRequestRepository) Update(ctx context.Context, leave *entity.LeaveRequest) error {
	err := r.db.WithContext(ctx).
		Model(leave).
		Select("ipus", "department", "sub_department", "shift_name", "leave_type", "start_date", "end_date", "reason", "status").
		Updates(leave).Error
	return translateError(err)
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("leave_request_id = ?", id).Delete(&entity.ReplacementCandidate{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.LeaveRequest{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (r *leaveRequestRepository) UpdateDecision(ctx context.Context, id uuid.UUID, status entity.LeaveStatus, approver string, decidedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approver,
			"approved_at": decidedAt,
		})
	return result.RowsAffected, result.Error
}

// ClaimReplacement is a compare-and-swap on (leave.status, candidate.status).
// The leave row UPDATE takes the row lock, so a concurrent claim for another
// candidate blocks, re-evaluates status = 'waiting_replacement' after we commit
// and matches zero rows.
func (r *leaveRequestRepository) ClaimReplacement(ctx context.Context, claim entity.ReplacementClaim) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pendingCandidate := tx.Model(&entity.ReplacementCandidate{}).
			Select("1").
			Where("leave_request_id = ? AND doctor_id = ? AND status = ?",
				claim.LeaveID, claim.DoctorID, entity.CandidateStatusPending)

		result := tx.Model(&entity.LeaveRequest{}).
			Where("id = ? AND status = ? AND accepted_by_doctor_id IS NULL", claim.LeaveID, entity.LeaveStatusWaitingReplacement).
			Where("EXISTS (?)", pendingCandidate).
			Updates(map[string]interface{}{
				"status":                  entity.LeaveStatusMatched,
				"accepted_by_doctor_id":   claim.DoctorID,
				"accepted_by_doctor_name": claim.DoctorName,
				"accepted_by_line_id":     claim.LineID,
				"accepted_by_accepted_at": claim.AcceptedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errClaimLost
		}

		result = tx.Model(&entity.ReplacementCandidate{}).
			Where("leave_request_id = ? AND doctor_id = ? AND status = ?",
				claim.LeaveID, claim.DoctorID, entity.CandidateStatusPending).
			Updates(map[string]interface{}{
				"status":       entity.CandidateStatusMatched,
				"responded_at": claim.AcceptedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errClaimLost
		}

		affected = result.RowsAffected
		return nil
	})
	// ux_leave_candidate_winner rejects a second winner for the same leave
	if errors.Is(err, errClaimLost) || isUniqueViolation(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *leaveRequestRepository) withCandidates(db *gorm.DB) *gorm.DB {
	return db.Preload("Candidates", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
