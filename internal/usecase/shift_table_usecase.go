package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"doctor-roster/internal/converter"
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
	"doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxTableDays bounds the date range of a single shift table query
const MaxTableDays = 366

var (
	ErrRangeTooLarge = errors.New("date range must not exceed 366 days")
)

// ShiftTableRenderer turns table rows into a downloadable document
type ShiftTableRenderer interface {
	Export(entries []entity.ShiftTableEntry) ([]byte, error)
}

type ShiftTableUsecase interface {
	GetTable(ctx context.Context, req *dto.ShiftTableRequest) (*dto.ShiftTableResponse, error)
	ExportTable(ctx context.Context, req *dto.ShiftTableRequest) ([]byte, error)
}

type shiftTableUsecase struct {
	log              *logrus.Logger
	shiftRequestRepo repository.ShiftRequestRepository
	leaveRepo        repository.LeaveRequestRepository
	renderer         ShiftTableRenderer
}

func NewShiftTableUsecase(
	log *logrus.Logger,
	shiftRequestRepo repository.ShiftRequestRepository,
	leaveRepo repository.LeaveRequestRepository,
	renderer ShiftTableRenderer,
) ShiftTableUsecase {
	return &shiftTableUsecase{
		log:              log,
		shiftRequestRepo: shiftRequestRepo,
		leaveRepo:        leaveRepo,
		renderer:         renderer,
	}
}

func (u *shiftTableUsecase) GetTable(ctx context.Context, req *dto.ShiftTableRequest) (*dto.ShiftTableResponse, error) {
	entries, err := u.project(ctx, req)
	if err != nil {
		return nil, err
	}

	return &dto.ShiftTableResponse{
		Ipus:       req.Ipus,
		Department: req.Department,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Entries:    converter.ShiftTableEntriesToResponses(entries),
		Total:      len(entries),
	}, nil
}

func (u *shiftTableUsecase) ExportTable(ctx context.Context, req *dto.ShiftTableRequest) ([]byte, error) {
	entries, err := u.project(ctx, req)
	if err != nil {
		return nil, err
	}

	content, err := u.renderer.Export(entries)
	if err != nil {
		u.log.Warnf("Failed to export shift table: %+v", err)
		return nil, err
	}

	return content, nil
}

// project merges booked shifts with the replacement shifts derived from
// matched leaves. Replacement rows are never stored.
func (u *shiftTableUsecase) project(ctx context.Context, req *dto.ShiftTableRequest) ([]entity.ShiftTableEntry, error) {
	start, err := entity.ParseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := entity.ParseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	// both dates are UTC midnight; Sub saturates on huge ranges
	if end.Sub(start) >= MaxTableDays*24*time.Hour {
		return nil, ErrRangeTooLarge
	}

	shifts, err := u.shiftRequestRepo.FindForTable(ctx, entity.ShiftTableFilter{
		Ipus:       req.Ipus,
		Department: req.Department,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		u.log.Warnf("Failed to find shifts for table: %+v", err)
		return nil, err
	}

	matched, err := u.leaveRepo.FindOverlapping(ctx, entity.LeaveOverlapFilter{
		Ipus:       req.Ipus,
		Department: req.Department,
		Statuses:   []entity.LeaveStatus{entity.LeaveStatusMatched},
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		u.log.Warnf("Failed to find matched leaves for table: %+v", err)
		return nil, err
	}

	onLeave, err := u.findDoctorLeaves(ctx, shifts, start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.ShiftTableEntry, 0, len(shifts))
	for i := range shifts {
		entry := entity.NewBookedEntry(&shifts[i])
		if leave := coveringLeave(onLeave, entry.DoctorID, entry.Date); leave != nil {
			entry.IsOnLeave = true
			if leave.Status == entity.LeaveStatusMatched {
				entry.ReplacementName = leave.AcceptedBy.DoctorName
			}
		}
		entries = append(entries, entry)
	}

	for i := range matched {
		leave := &matched[i]
		if !leave.AcceptedBy.IsSet() {
			continue
		}
		for _, day := range leave.OverlapDays(start, end) {
			entries = append(entries, entity.NewReplacementEntry(leave, day))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ShiftKey < entries[j].ShiftKey
	})

	return entries, nil
}

// findDoctorLeaves loads open or matched leaves of the doctors booked in shifts,
// whatever unit the leave was filed under.
func (u *shiftTableUsecase) findDoctorLeaves(ctx context.Context, shifts []entity.ShiftRequest, start, end time.Time) ([]entity.LeaveRequest, error) {
	if len(shifts) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(shifts))
	doctorIDs := make([]uuid.UUID, 0, len(shifts))
	for _, shift := range shifts {
		if _, ok := seen[shift.DoctorID]; ok {
			continue
		}
		seen[shift.DoctorID] = struct{}{}
		doctorIDs = append(doctorIDs, shift.DoctorID)
	}

	leaves, err := u.leaveRepo.FindOverlapping(ctx, entity.LeaveOverlapFilter{
		DoctorIDs: doctorIDs,
		Statuses:  []entity.LeaveStatus{entity.LeaveStatusWaitingReplacement, entity.LeaveStatusMatched},
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		u.log.Warnf("Failed to find doctor leaves for table: %+v", err)
		return nil, err
	}

	return leaves, nil
}

// coveringLeave prefers a matched leave over one still waiting for a replacement
func coveringLeave(leaves []entity.LeaveRequest, doctorID uuid.UUID, day time.Time) *entity.LeaveRequest {
	var found *entity.LeaveRequest
	for i := range leaves {
		leave := &leaves[i]
		if leave.DoctorID != doctorID || !leave.Covers(day) {
			continue
		}
		if leave.Status == entity.LeaveStatusMatched {
			return leave
		}
		if found == nil {
			found = leave
		}
	}
	return found
}
