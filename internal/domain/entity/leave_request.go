package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeaveStatus represents the overall status of a leave request
type LeaveStatus string

const (
	LeaveStatusWaitingReplacement LeaveStatus = "waiting_replacement"
	LeaveStatusMatched            LeaveStatus = "matched"
	LeaveStatusApproved           LeaveStatus = "approved"
	LeaveStatusRejected           LeaveStatus = "rejected"
)

// IsValid checks if status is one of the known values
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeaveStatusWaitingReplacement, LeaveStatusMatched, LeaveStatusApproved, LeaveStatusRejected:
		return true
	}
	return false
}

// CandidateStatus represents a replacement candidate's answer
type CandidateStatus string

const (
	CandidateStatusPending  CandidateStatus = "pending"
	CandidateStatusAccepted CandidateStatus = "accepted"
	CandidateStatusMatched  CandidateStatus = "matched"
	CandidateStatusRejected CandidateStatus = "rejected"
)

// HasWon reports whether this candidate is the one covering the leave
func (s CandidateStatus) HasWon() bool {
	return s == CandidateStatusAccepted || s == CandidateStatusMatched
}

// LeaveRequest represents a doctor's leave together with its replacement search.
// At most one candidate can ever reach accepted/matched; AcceptedBy snapshots that doctor.
type LeaveRequest struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ThaiFullName     string      `gorm:"type:varchar(255)" json:"thai_full_name"`
	CareProviderCode string      `gorm:"type:varchar(50)" json:"care_provider_code"`
	Ipus             string      `gorm:"type:varchar(100);not null;index:idx_leave_requests_unit" json:"ipus"`
	Department       string      `gorm:"type:varchar(100);not null;index:idx_leave_requests_unit" json:"department"`
	SubDepartment    string      `gorm:"type:varchar(100)" json:"sub_department"`
	ShiftName        string      `gorm:"type:varchar(100)" json:"shift_name"`
	LeaveType        string      `gorm:"type:varchar(50);not null" json:"leave_type"`
	StartDate        time.Time   `gorm:"type:date;not null" json:"start_date"`
	EndDate          time.Time   `gorm:"type:date;not null" json:"end_date"`
	Reason           string      `gorm:"type:text" json:"reason,omitempty"`
	Status           LeaveStatus `gorm:"type:varchar(30);not null;default:'waiting_replacement';index" json:"status"`
	AcceptedBy       AcceptedBy  `gorm:"embedded;embeddedPrefix:accepted_by_" json:"accepted_by"`
	ApprovedBy       string      `gorm:"type:varchar(255)" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time  `json:"approved_at,omitempty"`
	CreatedAt        time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Candidates []ReplacementCandidate `gorm:"foreignKey:LeaveRequestID;constraint:OnDelete:CASCADE" json:"replacement_doctors"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// AcceptedBy is a denormalized snapshot of the doctor who won the replacement
type AcceptedBy struct {
	DoctorID   *uuid.UUID `gorm:"type:uuid" json:"doctor_id,omitempty"`
	DoctorName string     `gorm:"type:varchar(255)" json:"doctor_name,omitempty"`
	LineID     string     `gorm:"type:varchar(64)" json:"line_id,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// IsSet reports whether a replacement has been recorded
func (a AcceptedBy) IsSet() bool {
	return a.DoctorID != nil
}

// ReplacementCandidate is a doctor nominated to cover a leave
type ReplacementCandidate struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	LeaveRequestID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_leave_candidate" json:"-"`
	Position       int             `gorm:"not null" json:"-"`
	DoctorID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_leave_candidate" json:"doctor_id"`
	DoctorName     string          `gorm:"type:varchar(255)" json:"doctor_name"`
	Status         CandidateStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RespondedAt    *time.Time      `json:"responded_at,omitempty"`
}

func (ReplacementCandidate) TableName() string {
	return "leave_replacement_candidates"
}

// IsOpen reports whether the leave still accepts replacement answers
func (l *LeaveRequest) IsOpen() bool {
	return l.Status == LeaveStatusWaitingReplacement
}

// IsClosed reports whether an administrator already decided the leave
func (l *LeaveRequest) IsClosed() bool {
	return l.Status == LeaveStatusApproved || l.Status == LeaveStatusRejected
}

// Candidate returns the candidate entry for doctorID, or nil
func (l *LeaveRequest) Candidate(doctorID uuid.UUID) *ReplacementCandidate {
	for i := range l.Candidates {
		if l.Candidates[i].DoctorID == doctorID {
			return &l.Candidates[i]
		}
	}
	return nil
}

// Winner returns the accepted/matched candidate, or nil
func (l *LeaveRequest) Winner() *ReplacementCandidate {
	for i := range l.Candidates {
		if l.Candidates[i].Status.HasWon() {
			return &l.Candidates[i]
		}
	}
	return nil
}

// Covers reports whether day falls inside [StartDate, EndDate]
func (l *LeaveRequest) Covers(day time.Time) bool {
	day = TruncateDate(day)
	return !day.Before(TruncateDate(l.StartDate)) && !day.After(TruncateDate(l.EndDate))
}

// OverlapDays returns each calendar day the leave shares with [start, end]
func (l *LeaveRequest) OverlapDays(start, end time.Time) []time.Time {
	from := TruncateDate(l.StartDate)
	if s := TruncateDate(start); s.After(from) {
		from = s
	}
	to := TruncateDate(l.EndDate)
	if e := TruncateDate(end); e.Before(to) {
		to = e
	}
	return DatesBetween(from, to)
}

// LeaveFilter is a domain-level filter for listing leave requests
type LeaveFilter struct {
	Status   LeaveStatus
	DoctorID *uuid.UUID
}

// LeaveOverlapFilter selects leaves whose range intersects [StartDate, EndDate].
// Empty Ipus/Department and nil DoctorIDs mean "any".
type LeaveOverlapFilter struct {
	Ipus       string
	Department string
	DoctorIDs  []uuid.UUID
	Statuses   []LeaveStatus
	StartDate  time.Time
	EndDate    time.Time
}

// ReplacementClaim carries what the atomic acceptance writes
type ReplacementClaim struct {
	LeaveID    uuid.UUID
	DoctorID   uuid.UUID
	DoctorName string
	LineID     string
	AcceptedAt time.Time
}
