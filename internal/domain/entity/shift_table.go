package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ShiftTableEntry is one display row of the shift table: either a booked
// ShiftRequest or a replacement shift derived from a matched leave.
type ShiftTableEntry struct {
	ID               string
	DoctorID         uuid.UUID
	ThaiFullName     string
	CareProviderCode string
	Ipus             string
	Department       string
	SubDepartment    string
	ShiftName        string
	ShiftKey         string
	Date             time.Time
	StartTime        string
	EndTime          string
	Status           ShiftRequestStatus
	Remark           string

	Replacement        bool
	LeaveID            *uuid.UUID
	OriginalDoctorID   *uuid.UUID
	OriginalDoctorName string

	// Set on booked rows whose doctor has an open or matched leave that day
	IsOnLeave       bool
	ReplacementName string
}

// ReplacementEntryID is the synthetic id of a derived replacement row
func ReplacementEntryID(leaveID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("replacement-%s-%s", leaveID, FormatDate(day))
}

// NewBookedEntry projects a stored shift request onto a table row
func NewBookedEntry(shift *ShiftRequest) ShiftTableEntry {
	return ShiftTableEntry{
		ID:               shift.ID.String(),
		DoctorID:         shift.DoctorID,
		ThaiFullName:     shift.ThaiFullName,
		CareProviderCode: shift.CareProviderCode,
		Ipus:             shift.Ipus,
		Department:       shift.Department,
		SubDepartment:    shift.SubDepartment,
		ShiftName:        shift.ShiftName,
		ShiftKey:         ShiftKey(shift.SubDepartment, shift.ShiftName),
		Date:             TruncateDate(shift.Date),
		StartTime:        shift.StartTime,
		EndTime:          shift.EndTime,
		Status:           shift.Status,
		Remark:           shift.Remark,
	}
}

// NewReplacementEntry synthesizes the row of the doctor covering leave on day
func NewReplacementEntry(leave *LeaveRequest, day time.Time) ShiftTableEntry {
	leaveID := leave.ID
	originalID := leave.DoctorID
	entry := ShiftTableEntry{
		ID:                 ReplacementEntryID(leave.ID, day),
		Ipus:               leave.Ipus,
		Department:         leave.Department,
		SubDepartment:      leave.SubDepartment,
		ShiftName:          leave.ShiftName,
		ShiftKey:           ShiftKey(leave.SubDepartment, leave.ShiftName),
		Date:               TruncateDate(day),
		Status:             ShiftRequestStatusApproved,
		Replacement:        true,
		LeaveID:            &leaveID,
		OriginalDoctorID:   &originalID,
		OriginalDoctorName: leave.ThaiFullName,
	}
	if leave.AcceptedBy.DoctorID != nil {
		entry.DoctorID = *leave.AcceptedBy.DoctorID
	}
	entry.ThaiFullName = leave.AcceptedBy.DoctorName
	return entry
}
