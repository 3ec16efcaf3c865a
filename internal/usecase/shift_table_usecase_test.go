package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	entries []entity.ShiftTableEntry
	err     error
}

func (r *stubRenderer) Export(entries []entity.ShiftTableEntry) ([]byte, error) {
	r.entries = entries
	if r.err != nil {
		return nil, r.err
	}
	return []byte("xlsx"), nil
}

type tableFixture struct {
	usecase  ShiftTableUsecase
	shifts   *fakeShiftRequestRepo
	leaves   *fakeLeaveRepo
	renderer *stubRenderer
}

func newTableFixture() *tableFixture {
	f := &tableFixture{
		shifts:   &fakeShiftRequestRepo{},
		leaves:   newFakeLeaveRepo(),
		renderer: &stubRenderer{},
	}
	f.usecase = NewShiftTableUsecase(newTestLogger(), f.shifts, f.leaves, f.renderer)
	return f
}

func (f *tableFixture) book(doctorID uuid.UUID, date, sub, shift string, status entity.ShiftRequestStatus) entity.ShiftRequest {
	s := entity.ShiftRequest{
		DoctorID:      doctorID,
		ThaiFullName:  "แพทย์",
		Ipus:          "IPD",
		Department:    "Medicine",
		SubDepartment: sub,
		ShiftName:     shift,
		Date:          mustDate(date),
		Status:        status,
	}
	_ = f.shifts.Create(context.Background(), &s)
	return s
}

func (f *tableFixture) matchedLeave(doctorID, replacementID uuid.UUID, start, end string) *entity.LeaveRequest {
	acceptedAt := time.Now().UTC()
	leave := &entity.LeaveRequest{
		DoctorID:      doctorID,
		ThaiFullName:  "นพ.ผู้ลา",
		Ipus:          "IPD",
		Department:    "Medicine",
		SubDepartment: "Ward 1",
		ShiftName:     "เวรเช้า",
		LeaveType:     "annual",
		StartDate:     mustDate(start),
		EndDate:       mustDate(end),
		Status:        entity.LeaveStatusMatched,
		AcceptedBy: entity.AcceptedBy{
			DoctorID:   &replacementID,
			DoctorName: "นพ.แทน",
			AcceptedAt: &acceptedAt,
		},
	}
	_ = f.leaves.Create(context.Background(), leave)
	return leave
}

func tableRequest(start, end string) *dto.ShiftTableRequest {
	return &dto.ShiftTableRequest{Ipus: "IPD", Department: "Medicine", StartDate: start, EndDate: end}
}

func TestGetTable_NoMatchedLeavesEqualsBookedShifts(t *testing.T) {
	f := newTableFixture()
	doctorID := uuid.New()

	first := f.book(doctorID, "2024-01-02", "Ward 1", "เวรเช้า", entity.ShiftRequestStatusApproved)
	second := f.book(doctorID, "2024-01-01", "Ward 2", "เวรบ่าย", entity.ShiftRequestStatusPending)
	f.book(doctorID, "2024-01-03", "Ward 1", "เวรเช้า", entity.ShiftRequestStatusRejected)
	f.book(doctorID, "2024-01-09", "Ward 1", "เวรเช้า", entity.ShiftRequestStatusApproved)

	table, err := f.usecase.GetTable(context.Background(), tableRequest("2024-01-01", "2024-01-05"))
	require.NoError(t, err)

	require.Equal(t, 2, table.Total)
	assert.Equal(t, second.ID.String(), table.Entries[0].ID)
	assert.Equal(t, "Ward 2|เวรบ่าย", table.Entries[0].ShiftKey)
	assert.Equal(t, first.ID.String(), table.Entries[1].ID)
	for _, entry := range table.Entries {
		assert.False(t, entry.Replacement)
		assert.False(t, entry.IsOnLeave)
	}
}

func TestGetTable_MatchedLeaveYieldsOneEntryPerOverlappingDay(t *testing.T) {
	f := newTableFixture()
	original, replacement := uuid.New(), uuid.New()

	leave := f.matchedLeave(original, replacement, "2024-01-03", "2024-01-07")

	table, err := f.usecase.GetTable(context.Background(), tableRequest("2024-01-01", "2024-01-05"))
	require.NoError(t, err)

	require.Equal(t, 3, table.Total)
	for i, day := range []string{"2024-01-03", "2024-01-04", "2024-01-05"} {
		entry := table.Entries[i]
		assert.Equal(t, entity.ReplacementEntryID(leave.ID, mustDate(day)), entry.ID)
		assert.Equal(t, "replacement-"+leave.ID.String()+"-"+day, entry.ID)
		assert.Equal(t, day, entry.Date)
		assert.True(t, entry.Replacement)
		assert.Equal(t, replacement, entry.DoctorID)
		assert.Equal(t, "นพ.แทน", entry.ThaiFullName)
		assert.Equal(t, "นพ.ผู้ลา", entry.OriginalDoctorName)
		assert.Equal(t, string(entity.ShiftRequestStatusApproved), entry.Status)
		assert.Equal(t, "Ward 1|เวรเช้า", entry.ShiftKey)
	}
}

func TestGetTable_MarksBookedShiftsOnLeave(t *testing.T) {
	f := newTableFixture()
	doctorID, waitingDoctorID := uuid.New(), uuid.New()

	f.book(doctorID, "2024-01-02", "Ward 1", "เวรเช้า", entity.ShiftRequestStatusApproved)
	f.book(waitingDoctorID, "2024-01-02", "Ward 2", "เวรเช้า", entity.ShiftRequestStatusApproved)
	f.book(waitingDoctorID, "2024-01-04", "Ward 2", "เวรเช้า", entity.ShiftRequestStatusApproved)
	f.matchedLeave(doctorID, uuid.New(), "2024-01-02", "2024-01-02")
	_ = f.leaves.Create(context.Background(), &entity.LeaveRequest{
		DoctorID:  waitingDoctorID,
		Ipus:      "OPD",
		StartDate: mustDate("2024-01-01"),
		EndDate:   mustDate("2024-01-03"),
		Status:    entity.LeaveStatusWaitingReplacement,
	})

	table, err := f.usecase.GetTable(context.Background(), tableRequest("2024-01-01", "2024-01-05"))
	require.NoError(t, err)
	require.Equal(t, 4, table.Total)

	byKey := make(map[string]dto.ShiftTableEntryResponse)
	for _, entry := range table.Entries {
		if entry.Replacement {
			continue
		}
		byKey[entry.Date+" "+entry.SubDepartment] = entry
	}

	assert.True(t, byKey["2024-01-02 Ward 1"].IsOnLeave)
	assert.Equal(t, "นพ.แทน", byKey["2024-01-02 Ward 1"].ReplacementName)
	assert.True(t, byKey["2024-01-02 Ward 2"].IsOnLeave)
	assert.Empty(t, byKey["2024-01-02 Ward 2"].ReplacementName)
	assert.False(t, byKey["2024-01-04 Ward 2"].IsOnLeave)
}

func TestGetTable_RangeValidation(t *testing.T) {
	f := newTableFixture()
	ctx := context.Background()

	_, err := f.usecase.GetTable(ctx, tableRequest("2024-13-01", "2024-01-05"))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.usecase.GetTable(ctx, tableRequest("2024-01-05", "2024-01-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.usecase.GetTable(ctx, tableRequest("2023-01-01", "2024-12-31"))
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = f.usecase.GetTable(ctx, tableRequest("0001-01-01", "9999-12-31"))
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	// 2024 is a leap year: 366 days inclusive is the largest allowed range
	_, err = f.usecase.GetTable(ctx, tableRequest("2024-01-01", "2024-12-31"))
	assert.NoError(t, err)

	_, err = f.usecase.GetTable(ctx, tableRequest("2024-01-01", "2025-01-01"))
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestGetTable_HugeRangeRejectedWithoutPerDayWork(t *testing.T) {
	f := newTableFixture()

	allocs := testing.AllocsPerRun(5, func() {
		_, err := f.usecase.GetTable(context.Background(), tableRequest("0001-01-01", "9999-12-31"))
		if !errors.Is(err, ErrRangeTooLarge) {
			t.Fatalf("expected ErrRangeTooLarge, got %v", err)
		}
	})
	assert.Less(t, allocs, float64(100))
}

func TestExportTable(t *testing.T) {
	f := newTableFixture()
	f.book(uuid.New(), "2024-01-02", "Ward 1", "เวรเช้า", entity.ShiftRequestStatusApproved)
	f.matchedLeave(uuid.New(), uuid.New(), "2024-01-01", "2024-01-01")

	content, err := f.usecase.ExportTable(context.Background(), tableRequest("2024-01-01", "2024-01-05"))
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), content)
	require.Len(t, f.renderer.entries, 2)
	assert.True(t, f.renderer.entries[0].Replacement)

	f.renderer.err = errors.New("disk full")
	_, err = f.usecase.ExportTable(context.Background(), tableRequest("2024-01-01", "2024-01-05"))
	assert.Error(t, err)
}
