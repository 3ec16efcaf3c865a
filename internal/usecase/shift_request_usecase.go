package usecase

import (
	"context"
	"errors"
	"time"

	"doctor-roster/internal/converter"
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
	"doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrShiftRequestNotFound = errors.New("shift request not found")
	ErrInvalidDate          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidStatus        = errors.New("invalid status")
)

type ShiftRequestUsecase interface {
	CreateShiftRequest(ctx context.Context, req *dto.CreateShiftRequestRequest) (*dto.ShiftRequestResponse, error)
	GetShiftRequest(ctx context.Context, shiftRequestID uuid.UUID) (*dto.ShiftRequestResponse, error)
	ListShiftRequests(ctx context.Context, status, date string) (*dto.ShiftRequestListResponse, error)
	UpdateShiftRequestStatus(ctx context.Context, shiftRequestID uuid.UUID, req *dto.UpdateShiftRequestStatusRequest) (*dto.ShiftRequestResponse, error)
}

type shiftRequestUsecase struct {
	log              *logrus.Logger
	shiftRequestRepo repository.ShiftRequestRepository
	doctorRepo       repository.DoctorRepository
}

func NewShiftRequestUsecase(
	log *logrus.Logger,
	shiftRequestRepo repository.ShiftRequestRepository,
	doctorRepo repository.DoctorRepository,
) ShiftRequestUsecase {
	return &shiftRequestUsecase{
		log:              log,
		shiftRequestRepo: shiftRequestRepo,
		doctorRepo:       doctorRepo,
	}
}

func (u *shiftRequestUsecase) CreateShiftRequest(ctx context.Context, req *dto.CreateShiftRequestRequest) (*dto.ShiftRequestResponse, error) {
	date, err := entity.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	shift := &entity.ShiftRequest{
		DoctorID:         doctor.ID,
		ThaiFullName:     doctor.DisplayName(),
		CareProviderCode: doctor.CareProviderCode,
		Ipus:             firstNonEmpty(req.Ipus, doctor.Ipus),
		Department:       firstNonEmpty(req.Department, doctor.Department),
		SubDepartment:    req.SubDepartment,
		ShiftName:        req.ShiftName,
		Date:             date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Remark:           req.Remark,
		Status:           entity.ShiftRequestStatusPending,
	}

	if err := u.shiftRequestRepo.Create(ctx, shift); err != nil {
		u.log.Warnf("Failed to create shift request: %+v", err)
		return nil, err
	}

	return converter.ShiftRequestToResponse(shift), nil
}

func (u *shiftRequestUsecase) GetShiftRequest(ctx context.Context, shiftRequestID uuid.UUID) (*dto.ShiftRequestResponse, error) {
	shift, err := u.shiftRequestRepo.FindByID(ctx, shiftRequestID)
	if err != nil {
		u.log.Warnf("Failed to find shift request: %+v", err)
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftRequestNotFound
	}

	return converter.ShiftRequestToResponse(shift), nil
}

func (u *shiftRequestUsecase) ListShiftRequests(ctx context.Context, status, date string) (*dto.ShiftRequestListResponse, error) {
	filter := &entity.ShiftRequestFilter{}
	if status != "" {
		filter.Status = entity.ShiftRequestStatus(status)
		if !filter.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
	}
	if date != "" {
		day, err := entity.ParseDate(date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filter.Date = &day
	}

	shifts, err := u.shiftRequestRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find shift requests: %+v", err)
		return nil, err
	}

	return &dto.ShiftRequestListResponse{
		ShiftRequests: converter.ShiftRequestsToResponses(shifts),
		Total:         len(shifts),
	}, nil
}

// UpdateShiftRequestStatus is the administrative approval action. Date, doctor and shift stay as booked.
func (u *shiftRequestUsecase) UpdateShiftRequestStatus(ctx context.Context, shiftRequestID uuid.UUID, req *dto.UpdateShiftRequestStatusRequest) (*dto.ShiftRequestResponse, error) {
	status := entity.ShiftRequestStatus(req.Status)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	shift, err := u.shiftRequestRepo.FindByID(ctx, shiftRequestID)
	if err != nil {
		u.log.Warnf("Failed to find shift request: %+v", err)
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftRequestNotFound
	}

	affected, err := u.shiftRequestRepo.UpdateStatus(ctx, shiftRequestID, status)
	if err != nil {
		u.log.Warnf("Failed to update shift request status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrShiftRequestNotFound
	}

	shift.Status = status
	shift.UpdatedAt = time.Now()
	return converter.ShiftRequestToResponse(shift), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
