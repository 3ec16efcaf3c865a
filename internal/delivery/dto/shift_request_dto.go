package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateShiftRequestRequest books a shift. Unit and department default to the doctor's own.
type CreateShiftRequestRequest struct {
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	Ipus          string    `json:"ipus" validate:"omitempty,max=100"`
	Department    string    `json:"department" validate:"omitempty,max=100"`
	SubDepartment string    `json:"sub_department" validate:"required,max=100"`
	ShiftName     string    `json:"shift_name" validate:"required,max=100"`
	Date          string    `json:"date" validate:"required,datetime=2006-01-02"`   // Format: YYYY-MM-DD
	StartTime     string    `json:"start_time" validate:"omitempty,datetime=15:04"` // Format: HH:MM
	EndTime       string    `json:"end_time" validate:"omitempty,datetime=15:04"`   // Format: HH:MM
	Remark        string    `json:"remark" validate:"omitempty,max=500"`
}

type UpdateShiftRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// ShiftTableRequest is read from the query string of the table endpoints
type ShiftTableRequest struct {
	Ipus       string `json:"ipus" validate:"required"`
	Department string `json:"department" validate:"required"`
	StartDate  string `json:"start" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end" validate:"required,datetime=2006-01-02"`
}

// Response DTOs

type ShiftRequestResponse struct {
	ID               uuid.UUID `json:"id"`
	DoctorID         uuid.UUID `json:"doctor_id"`
	ThaiFullName     string    `json:"thai_full_name"`
	CareProviderCode string    `json:"care_provider_code"`
	Ipus             string    `json:"ipus"`
	Department       string    `json:"department"`
	SubDepartment    string    `json:"sub_department"`
	ShiftName        string    `json:"shift_name"`
	ShiftKey         string    `json:"shift_key"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time,omitempty"`
	EndTime          string    `json:"end_time,omitempty"`
	Remark           string    `json:"remark,omitempty"`
	Status           string    `json:"status"`
	RequestedAt      time.Time `json:"requested_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ShiftRequestListResponse struct {
	ShiftRequests []ShiftRequestResponse `json:"shift_requests"`
	Total         int                    `json:"total"`
}

type ShiftTableEntryResponse struct {
	ID                 string     `json:"id"`
	DoctorID           uuid.UUID  `json:"doctor_id"`
	ThaiFullName       string     `json:"thai_full_name"`
	CareProviderCode   string     `json:"care_provider_code,omitempty"`
	Ipus               string     `json:"ipus"`
	Department         string     `json:"department"`
	SubDepartment      string     `json:"sub_department"`
	ShiftName          string     `json:"shift_name"`
	ShiftKey           string     `json:"shift_key"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time,omitempty"`
	EndTime            string     `json:"end_time,omitempty"`
	Status             string     `json:"status"`
	Remark             string     `json:"remark,omitempty"`
	Replacement        bool       `json:"replacement"`
	LeaveID            *uuid.UUID `json:"leave_id,omitempty"`
	OriginalDoctorID   *uuid.UUID `json:"original_doctor_id,omitempty"`
	OriginalDoctorName string     `json:"original_doctor_name,omitempty"`
	IsOnLeave          bool       `json:"is_on_leave"`
	ReplacementName    string     `json:"replacement_name,omitempty"`
}

type ShiftTableResponse struct {
	Ipus       string                    `json:"ipus"`
	Department string                    `json:"department"`
	StartDate  string                    `json:"start_date"`
	EndDate    string                    `json:"end_date"`
	Entries    []ShiftTableEntryResponse `json:"entries"`
	Total      int                       `json:"total"`
}
