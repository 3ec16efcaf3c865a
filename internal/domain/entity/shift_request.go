package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShiftRequestStatus represents the approval status of a booked shift
type ShiftRequestStatus string

const (
	ShiftRequestStatusPending  ShiftRequestStatus = "pending"
	ShiftRequestStatusApproved ShiftRequestStatus = "approved"
	ShiftRequestStatusRejected ShiftRequestStatus = "rejected"
)

// IsValid checks if status is one of the known values
func (s ShiftRequestStatus) IsValid() bool {
	switch s {
	case ShiftRequestStatusPending, ShiftRequestStatusApproved, ShiftRequestStatusRejected:
		return true
	}
	return false
}

// ShiftRequest is a directly booked shift instance.
// Date, doctor and shift fields are immutable once created; only Status changes.
type ShiftRequest struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ThaiFullName     string             `gorm:"type:varchar(255)" json:"thai_full_name"`
	CareProviderCode string             `gorm:"type:varchar(50)" json:"care_provider_code"`
	Ipus             string             `gorm:"type:varchar(100);not null;index:idx_shift_requests_table" json:"ipus"`
	Department       string             `gorm:"type:varchar(100);not null;index:idx_shift_requests_table" json:"department"`
	SubDepartment    string             `gorm:"type:varchar(100);not null" json:"sub_department"`
	ShiftName        string             `gorm:"type:varchar(100);not null" json:"shift_name"`
	Date             time.Time          `gorm:"type:date;not null;index:idx_shift_requests_table" json:"date"`
	StartTime        string             `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime          string             `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	Remark           string             `gorm:"type:text" json:"remark,omitempty"`
	Status           ShiftRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RequestedAt      time.Time          `gorm:"autoCreateTime" json:"requested_at"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ShiftRequest) TableName() string {
	return "shift_requests"
}

// ShiftKey groups table rows by "sub_department|shift_name"
func ShiftKey(subDepartment, shiftName string) string {
	return subDepartment + "|" + shiftName
}

// ShiftRequestFilter is a domain-level filter for listing shift requests
type ShiftRequestFilter struct {
	Status ShiftRequestStatus
	Date   *time.Time
}

// ShiftTableFilter selects the booked shifts of one unit/department within a date range
type ShiftTableFilter struct {
	Ipus       string
	Department string
	StartDate  time.Time
	EndDate    time.Time
}
