package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateLeaveRequest submits a leave. Unit and department default to the requesting doctor's.
type CreateLeaveRequest struct {
	DoctorID             uuid.UUID   `json:"doctor_id" validate:"required"`
	LeaveType            string      `json:"leave_type" validate:"required,max=50"`
	StartDate            string      `json:"start_date" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	EndDate              string      `json:"end_date" validate:"required,datetime=2006-01-02"`   // Format: YYYY-MM-DD
	Reason               string      `json:"reason" validate:"omitempty,max=1000"`
	Ipus                 string      `json:"ipus" validate:"omitempty,max=100"`
	Department           string      `json:"department" validate:"omitempty,max=100"`
	SubDepartment        string      `json:"sub_department" validate:"omitempty,max=100"`
	ShiftName            string      `json:"shift_name" validate:"omitempty,max=100"`
	ReplacementDoctorIDs []uuid.UUID `json:"replacement_doctor_ids"`
}

// UpdateLeaveRequest is an administrative edit. The candidate list is not editable.
type UpdateLeaveRequest struct {
	LeaveType     string  `json:"leave_type" validate:"omitempty,max=50"`
	StartDate     string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Reason        *string `json:"reason" validate:"omitempty,max=1000"`
	Ipus          string  `json:"ipus" validate:"omitempty,max=100"`
	Department    string  `json:"department" validate:"omitempty,max=100"`
	SubDepartment string  `json:"sub_department" validate:"omitempty,max=100"`
	ShiftName     string  `json:"shift_name" validate:"omitempty,max=100"`
	Status        string  `json:"status" validate:"omitempty,oneof=waiting_replacement matched approved rejected"`
}

type DecideLeaveRequest struct {
	ApproverName string `json:"approver_name" validate:"required,max=255"`
}

type ConfirmLeaveRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
}

// Response DTOs

type ReplacementDoctorResponse struct {
	DoctorID    uuid.UUID  `json:"doctor_id"`
	DoctorName  string     `json:"doctor_name"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type AcceptedByResponse struct {
	DoctorID   uuid.UUID  `json:"doctor_id"`
	DoctorName string     `json:"doctor_name"`
	LineID     string     `json:"line_id,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

type LeaveResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	DoctorID           uuid.UUID                   `json:"doctor_id"`
	ThaiFullName       string                      `json:"thai_full_name"`
	CareProviderCode   string                      `json:"care_provider_code"`
	Ipus               string                      `json:"ipus"`
	Department         string                      `json:"department"`
	SubDepartment      string                      `json:"sub_department,omitempty"`
	ShiftName          string                      `json:"shift_name,omitempty"`
	LeaveType          string                      `json:"leave_type"`
	StartDate          string                      `json:"start_date"`
	EndDate            string                      `json:"end_date"`
	Reason             string                      `json:"reason,omitempty"`
	Status             string                      `json:"status"`
	ReplacementDoctors []ReplacementDoctorResponse `json:"replacement_doctors"`
	AcceptedBy         *AcceptedByResponse         `json:"accepted_by,omitempty"`
	ApprovedBy         string                      `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time                  `json:"approved_at,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

type LeaveListResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
	Total  int             `json:"total"`
}
