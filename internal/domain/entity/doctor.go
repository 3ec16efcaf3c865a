package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DoctorStatus represents the employment status of a doctor record
type DoctorStatus string

const (
	DoctorStatusActive   DoctorStatus = "active"
	DoctorStatusInactive DoctorStatus = "inactive"
)

// IsValid checks if status is one of the known values
func (s DoctorStatus) IsValid() bool {
	return s == DoctorStatusActive || s == DoctorStatusInactive
}

// DoctorApprovals holds the per-doctor permission flags for self-service requests
type DoctorApprovals struct {
	Shift bool `json:"shift"`
	Leave bool `json:"leave"`
}

// Doctor represents a doctor in the roster.
// LineID is the LINE contact handle; it is only ever bound through chat registration.
type Doctor struct {
	ID               uuid.UUID                           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Ipus             string                              `gorm:"type:varchar(100);index:idx_doctors_unit" json:"ipus"`
	Department       string                              `gorm:"type:varchar(100);index:idx_doctors_unit" json:"department"`
	DepartmentGroup  string                              `gorm:"type:varchar(100)" json:"department_group,omitempty"`
	CareProviderCode string                              `gorm:"type:varchar(50);uniqueIndex;not null" json:"care_provider_code"`
	MedicalLicense   string                              `gorm:"type:varchar(50);index" json:"medical_license"`
	EnglishTitle     string                              `gorm:"type:varchar(50)" json:"english_title,omitempty"`
	EnglishFirstName string                              `gorm:"type:varchar(100)" json:"english_first_name,omitempty"`
	EnglishLastName  string                              `gorm:"type:varchar(100)" json:"english_last_name,omitempty"`
	ThaiTitle        string                              `gorm:"type:varchar(50)" json:"thai_title,omitempty"`
	ThaiFirstName    string                              `gorm:"type:varchar(100)" json:"thai_first_name,omitempty"`
	ThaiLastName     string                              `gorm:"type:varchar(100)" json:"thai_last_name,omitempty"`
	ThaiFullName     string                              `gorm:"type:varchar(255)" json:"thai_full_name"`
	Phone            string                              `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email            string                              `gorm:"type:varchar(255)" json:"email,omitempty"`
	LineID           *string                             `gorm:"column:line_id;type:varchar(64)" json:"line_id,omitempty"`
	WorkType         string                              `gorm:"type:varchar(50)" json:"work_type,omitempty"`
	WorkTypeGroup    string                              `gorm:"type:varchar(50)" json:"work_type_group,omitempty"`
	Specialties      datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"specialties"`
	SubSpecialties   datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"sub_specialties"`
	Approvals        datatypes.JSONType[DoctorApprovals] `gorm:"type:jsonb" json:"approvals"`
	Status           DoctorStatus                        `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt        time.Time                           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsRegistered reports whether the doctor has bound a LINE account
func (d *Doctor) IsRegistered() bool {
	return d.LineID != nil && *d.LineID != ""
}

// ContactHandle returns the bound LINE user id, or "" when unregistered
func (d *Doctor) ContactHandle() string {
	if d.LineID == nil {
		return ""
	}
	return *d.LineID
}

// ComposeThaiFullName fills ThaiFullName from its parts when it was not supplied
func (d *Doctor) ComposeThaiFullName() {
	if strings.TrimSpace(d.ThaiFullName) != "" {
		return
	}
	// Thai titles are written attached to the first name (e.g. "นพ.สมชาย ใจดี")
	head := strings.TrimSpace(d.ThaiTitle) + strings.TrimSpace(d.ThaiFirstName)
	d.ThaiFullName = joinName(head, d.ThaiLastName)
}

// DisplayName prefers the Thai full name and falls back to the English one
func (d *Doctor) DisplayName() string {
	if d.ThaiFullName != "" {
		return d.ThaiFullName
	}
	if name := joinName(d.EnglishTitle, d.EnglishFirstName, d.EnglishLastName); name != "" {
		return name
	}
	return d.CareProviderCode
}

// NormalizeTags trims and deduplicates a tag set, keeping first-seen order
func NormalizeTags(tags []string) datatypes.JSONSlice[string] {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return datatypes.JSONSlice[string](out)
}

func joinName(parts ...string) string {
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			words = append(words, p)
		}
	}
	return strings.Join(words, " ")
}
