package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doctor-roster/config"
	"doctor-roster/internal/converter"
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
	"doctor-roster/internal/domain/repository"
	"doctor-roster/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

var (
	ErrLeaveNotFound      = errors.New("leave request not found")
	ErrInvalidDateRange   = errors.New("start_date must not be after end_date")
	ErrNoCandidates       = errors.New("at least one replacement doctor is required")
	ErrDuplicateCandidate = errors.New("replacement doctors must be unique")
	ErrSelfReplacement    = errors.New("requesting doctor cannot be a replacement candidate")
	ErrCandidateNotFound  = errors.New("replacement doctor not found")
	ErrNotEligible        = errors.New("doctor is not a pending replacement candidate")
	ErrAlreadyMatched     = errors.New("leave request already matched")
	ErrLeaveClosed        = errors.New("leave request already approved or rejected")
	ErrApproverRequired   = errors.New("approver name is required")
	ErrStatusTransition   = errors.New("leave status change conflicts with its replacement")
)

type LeaveRequestUsecase interface {
	SubmitLeave(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	AttemptAccept(ctx context.Context, leaveID, doctorID uuid.UUID) (*dto.LeaveResponse, error)
	ApproveLeave(ctx context.Context, leaveID uuid.UUID, req *dto.DecideLeaveRequest) (*dto.LeaveResponse, error)
	RejectLeave(ctx context.Context, leaveID uuid.UUID, req *dto.DecideLeaveRequest) (*dto.LeaveResponse, error)
	GetLeave(ctx context.Context, leaveID uuid.UUID) (*dto.LeaveResponse, error)
	ListLeaves(ctx context.Context, status string) (*dto.LeaveListResponse, error)
	ListLeavesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.LeaveListResponse, error)
	UpdateLeave(ctx context.Context, leaveID uuid.UUID, req *dto.UpdateLeaveRequest) (*dto.LeaveResponse, error)
	DeleteLeave(ctx context.Context, leaveID uuid.UUID) error
}

type leaveRequestUsecase struct {
	log               *logrus.Logger
	leaveRepo         repository.LeaveRequestRepository
	doctorRepo        repository.DoctorRepository
	chatSessionRepo   repository.ChatSessionRepository
	notifier          service.Notifier
	notifyTimeout     time.Duration
	notifyConcurrency int
}

func NewLeaveRequestUsecase(
	log *logrus.Logger,
	leaveRepo repository.LeaveRequestRepository,
	doctorRepo repository.DoctorRepository,
	chatSessionRepo repository.ChatSessionRepository,
	notifier service.Notifier,
	notifyCfg config.NotifyConfig,
) LeaveRequestUsecase {
	if notifyCfg.Timeout <= 0 {
		notifyCfg.Timeout = 5 * time.Second
	}
	if notifyCfg.Concurrency <= 0 {
		notifyCfg.Concurrency = 4
	}

	return &leaveRequestUsecase{
		log:               log,
		leaveRepo:         leaveRepo,
		doctorRepo:        doctorRepo,
		chatSessionRepo:   chatSessionRepo,
		notifier:          notifier,
		notifyTimeout:     notifyCfg.Timeout,
		notifyConcurrency: notifyCfg.Concurrency,
	}
}

func (u *leaveRequestUsecase) SubmitLeave(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	startDate, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := entity.ParseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}

	if len(req.ReplacementDoctorIDs) == 0 {
		return nil, ErrNoCandidates
	}
	seen := make(map[uuid.UUID]struct{}, len(req.ReplacementDoctorIDs))
	for _, id := range req.ReplacementDoctorIDs {
		if id == req.DoctorID {
			return nil, ErrSelfReplacement
		}
		if _, ok := seen[id]; ok {
			return nil, ErrDuplicateCandidate
		}
		seen[id] = struct{}{}
	}

	requester, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if requester == nil {
		return nil, ErrDoctorNotFound
	}

	found, err := u.doctorRepo.FindByIDs(ctx, req.ReplacementDoctorIDs)
	if err != nil {
		u.log.Warnf("Failed to find replacement doctors: %+v", err)
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Doctor, len(found))
	for _, doctor := range found {
		byID[doctor.ID] = doctor
	}

	candidateDoctors := make([]entity.Doctor, len(req.ReplacementDoctorIDs))
	candidates := make([]entity.ReplacementCandidate, len(req.ReplacementDoctorIDs))
	for i, id := range req.ReplacementDoctorIDs {
		doctor, ok := byID[id]
		if !ok {
			return nil, ErrCandidateNotFound
		}
		candidateDoctors[i] = doctor
		candidates[i] = entity.ReplacementCandidate{
			Position:   i,
			DoctorID:   doctor.ID,
			DoctorName: doctor.DisplayName(),
			Status:     entity.CandidateStatusPending,
		}
	}

	leave := &entity.LeaveRequest{
		DoctorID:         requester.ID,
		ThaiFullName:     requester.DisplayName(),
		CareProviderCode: requester.CareProviderCode,
		Ipus:             firstNonEmpty(req.Ipus, requester.Ipus),
		Department:       firstNonEmpty(req.Department, requester.Department),
		SubDepartment:    req.SubDepartment,
		ShiftName:        req.ShiftName,
		LeaveType:        req.LeaveType,
		StartDate:        startDate,
		EndDate:          endDate,
		Reason:           req.Reason,
		Status:           entity.LeaveStatusWaitingReplacement,
		Candidates:       candidates,
	}

	if err := u.leaveRepo.Create(ctx, leave); err != nil {
		u.log.Warnf("Failed to create leave request: %+v", err)
		return nil, err
	}
	u.log.Infof("Leave %s submitted by %s with %d replacement candidates", leave.ID, requester.ID, len(candidates))

	// The leave is committed; notifying candidates is best-effort from here on
	u.notifyCandidates(leave, candidateDoctors)

	return converter.LeaveToResponse(leave), nil
}

// notifyCandidates moves each registered candidate's chat session to
// waiting_accept_leave and pushes the request to them. Failures are logged only.
func (u *leaveRequestUsecase) notifyCandidates(leave *entity.LeaveRequest, candidates []entity.Doctor) {
	text := fmt.Sprintf(msgLeaveCandidate,
		leave.ID, leave.ThaiFullName, entity.FormatDate(leave.StartDate), entity.FormatDate(leave.EndDate))

	g := new(errgroup.Group)
	g.SetLimit(u.notifyConcurrency)

	for i := range candidates {
		candidate := &candidates[i]
		if !candidate.IsRegistered() {
			u.log.Infof("Candidate %s has no LINE account, skipping notification for leave %s", candidate.ID, leave.ID)
			continue
		}

		g.Go(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), u.notifyTimeout)
			defer cancel()

			handle := candidate.ContactHandle()
			session := &entity.ChatSession{
				LineUserID: handle,
				State:      entity.ChatStateWaitingAcceptLeave,
				Context:    datatypes.JSONMap{entity.ChatContextLeaveID: leave.ID.String()},
			}
			if err := u.chatSessionRepo.Upsert(ctx, session); err != nil {
				u.log.Warnf("Failed to set chat session for candidate %s: %+v", candidate.ID, err)
				return nil
			}

			if err := u.notifier.Send(ctx, handle, text); err != nil {
				u.log.Warnf("Failed to notify candidate %s about leave %s: %+v", candidate.ID, leave.ID, err)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// AttemptAccept lets a pending candidate claim the leave. The store performs
// the claim as one conditional update; losing it is terminal for this attempt.
func (u *leaveRequestUsecase) AttemptAccept(ctx context.Context, leaveID, doctorID uuid.UUID) (*dto.LeaveResponse, error) {
	leave, err := u.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		u.log.Warnf("Failed to find leave request: %+v", err)
		return nil, err
	}
	if leave == nil {
		return nil, ErrLeaveNotFound
	}

	candidate := leave.Candidate(doctorID)
	if candidate == nil {
		return nil, ErrNotEligible
	}
	if leave.IsClosed() {
		return nil, ErrLeaveClosed
	}
	if candidate.Status != entity.CandidateStatusPending {
		return nil, ErrNotEligible
	}
	if leave.Status == entity.LeaveStatusMatched {
		return nil, ErrAlreadyMatched
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}

	claim := entity.ReplacementClaim{
		LeaveID:    leave.ID,
		DoctorID:   doctorID,
		DoctorName: candidate.DoctorName,
		AcceptedAt: time.Now().UTC(),
	}
	if doctor != nil {
		claim.DoctorName = doctor.DisplayName()
		claim.LineID = doctor.ContactHandle()
	}

	affected, err := u.leaveRepo.ClaimReplacement(ctx, claim)
	if err != nil {
		u.log.Warnf("Failed to claim replacement: %+v", err)
		return nil, err
	}
	if affected == 0 {
		u.log.Infof("Doctor %s lost the replacement claim for leave %s", doctorID, leaveID)
		return nil, u.classifyLostClaim(ctx, leaveID)
	}

	leave.Status = entity.LeaveStatusMatched
	candidate.Status = entity.CandidateStatusMatched
	candidate.RespondedAt = &claim.AcceptedAt
	leave.AcceptedBy = entity.AcceptedBy{
		DoctorID:   &claim.DoctorID,
		DoctorName: claim.DoctorName,
		LineID:     claim.LineID,
		AcceptedAt: &claim.AcceptedAt,
	}
	u.log.Infof("Leave %s matched with replacement doctor %s", leave.ID, doctorID)

	u.notifyDoctor(leave.DoctorID, fmt.Sprintf(msgReplacementFound,
		entity.FormatDate(leave.StartDate), entity.FormatDate(leave.EndDate), claim.DoctorName))

	return converter.LeaveToResponse(leave), nil
}

// classifyLostClaim only picks the error to report; it never retries the claim.
func (u *leaveRequestUsecase) classifyLostClaim(ctx context.Context, leaveID uuid.UUID) error {
	leave, err := u.leaveRepo.FindByID(ctx, leaveID)
	if err != nil || leave == nil {
		return ErrAlreadyMatched
	}
	if leave.IsClosed() {
		return ErrLeaveClosed
	}
	return ErrAlreadyMatched
}

func (u *leaveRequestUsecase) ApproveLeave(ctx context.Context, leaveID uuid.UUID, req *dto.DecideLeaveRequest) (*dto.LeaveResponse, error) {
	return u.decide(ctx, leaveID, entity.LeaveStatusApproved, req)
}

func (u *leaveRequestUsecase) RejectLeave(ctx context.Context, leaveID uuid.UUID, req *dto.DecideLeaveRequest) (*dto.LeaveResponse, error) {
	return u.decide(ctx, leaveID, entity.LeaveStatusRejected, req)
}

// decide is the administrative override; candidate entries are left as they are.
func (u *leaveRequestUsecase) decide(ctx context.Context, leaveID uuid.UUID, status entity.LeaveStatus, req *dto.DecideLeaveRequest) (*dto.LeaveResponse, error) {
	approver := strings.TrimSpace(req.ApproverName)
	if approver == "" {
		return nil, ErrApproverRequired
	}

	leave, err := u.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		u.log.Warnf("Failed to find leave request: %+v", err)
		return nil, err
	}
	if leave == nil {
		return nil, ErrLeaveNotFound
	}

	decidedAt := time.Now().UTC()
	affected, err := u.leaveRepo.UpdateDecision(ctx, leaveID, status, approver, decidedAt)
	if err != nil {
		u.log.Warnf("Failed to update leave decision: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrLeaveNotFound
	}

	leave.Status = status
	leave.ApprovedBy = approver
	leave.ApprovedAt = &decidedAt
	u.log.Infof("Leave %s %s by %s", leave.ID, status, approver)

	template := msgLeaveApproved
	if status == entity.LeaveStatusRejected {
		template = msgLeaveRejected
	}
	u.notifyDoctor(leave.DoctorID, fmt.Sprintf(template,
		entity.FormatDate(leave.StartDate), entity.FormatDate(leave.EndDate), approver))

	return converter.LeaveToResponse(leave), nil
}

func (u *leaveRequestUsecase) GetLeave(ctx context.Context, leaveID uuid.UUID) (*dto.LeaveResponse, error) {
	leave, err := u.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		u.log.Warnf("Failed to find leave request: %+v", err)
		return nil, err
	}
	if leave == nil {
		return nil, ErrLeaveNotFound
	}

	return converter.LeaveToResponse(leave), nil
}

func (u *leaveRequestUsecase) ListLeaves(ctx context.Context, status string) (*dto.LeaveListResponse, error) {
	filter := &entity.LeaveFilter{}
	if status != "" {
		filter.Status = entity.LeaveStatus(status)
		if !filter.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}
	return u.listLeaves(ctx, filter)
}

func (u *leaveRequestUsecase) ListLeavesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.LeaveListResponse, error) {
	return u.listLeaves(ctx, &entity.LeaveFilter{DoctorID: &doctorID})
}

func (u *leaveRequestUsecase) listLeaves(ctx context.Context, filter *entity.LeaveFilter) (*dto.LeaveListResponse, error) {
	leaves, err := u.leaveRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find leave requests: %+v", err)
		return nil, err
	}

	return &dto.LeaveListResponse{
		Leaves: converter.LeavesToResponses(leaves),
		Total:  len(leaves),
	}, nil
}

func (u *leaveRequestUsecase) UpdateLeave(ctx context.Context, leaveID uuid.UUID, req *dto.UpdateLeaveRequest) (*dto.LeaveResponse, error) {
	leave, err := u.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		u.log.Warnf("Failed to find leave request: %+v", err)
		return nil, err
	}
	if leave == nil {
		return nil, ErrLeaveNotFound
	}

	if req.StartDate != "" {
		if leave.StartDate, err = entity.ParseDate(req.StartDate); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if req.EndDate != "" {
		if leave.EndDate, err = entity.ParseDate(req.EndDate); err != nil {
			return nil, ErrInvalidDate
		}
	}
	if leave.StartDate.After(leave.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Status != "" {
		status := entity.LeaveStatus(req.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		if err := checkStatusTransition(leave, status); err != nil {
			return nil, err
		}
		leave.Status = status
	}
	if req.Reason != nil {
		leave.Reason = *req.Reason
	}
	setIfPresent(&leave.LeaveType, req.LeaveType)
	setIfPresent(&leave.Ipus, req.Ipus)
	setIfPresent(&leave.Department, req.Department)
	setIfPresent(&leave.SubDepartment, req.SubDepartment)
	setIfPresent(&leave.ShiftName, req.ShiftName)

	if err := u.leaveRepo.Update(ctx, leave); err != nil {
		u.log.Warnf("Failed to update leave request: %+v", err)
		return nil, err
	}

	return converter.LeaveToResponse(leave), nil
}

// checkStatusTransition keeps status consistent with accepted_by: a claimed
// leave never reopens, and only the atomic claim may mark a leave matched.
func checkStatusTransition(leave *entity.LeaveRequest, status entity.LeaveStatus) error {
	if status == leave.Status {
		return nil
	}
	switch status {
	case entity.LeaveStatusWaitingReplacement:
		if leave.AcceptedBy.IsSet() {
			return ErrStatusTransition
		}
	case entity.LeaveStatusMatched:
		if !leave.AcceptedBy.IsSet() {
			return ErrStatusTransition
		}
	}
	return nil
}

func (u *leaveRequestUsecase) DeleteLeave(ctx context.Context, leaveID uuid.UUID) error {
	affected, err := u.leaveRepo.Delete(ctx, leaveID)
	if err != nil {
		u.log.Warnf("Failed to delete leave request: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrLeaveNotFound
	}

	return nil
}

// notifyDoctor pushes text to a doctor's LINE account on a detached context.
func (u *leaveRequestUsecase) notifyDoctor(doctorID uuid.UUID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), u.notifyTimeout)
	defer cancel()

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s for notification: %+v", doctorID, err)
		return
	}
	if doctor == nil || !doctor.IsRegistered() {
		return
	}

	if err := u.notifier.Send(ctx, doctor.ContactHandle(), text); err != nil {
		u.log.Warnf("Failed to notify doctor %s: %+v", doctorID, err)
	}
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
