package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type DoctorApprovalsRequest struct {
	Shift bool `json:"shift"`
	Leave bool `json:"leave"`
}

// CreateDoctorRequest is the allow-list of fields a client may set on a doctor.
// Identifiers and the LINE binding are not part of it.
type CreateDoctorRequest struct {
	Ipus             string                  `json:"ipus" validate:"required,max=100"`
	Department       string                  `json:"department" validate:"required,max=100"`
	DepartmentGroup  string                  `json:"department_group" validate:"omitempty,max=100"`
	CareProviderCode string                  `json:"care_provider_code" validate:"required,max=50"`
	MedicalLicense   string                  `json:"medical_license" validate:"omitempty,max=50"`
	EnglishTitle     string                  `json:"english_title" validate:"omitempty,max=50"`
	EnglishFirstName string                  `json:"english_first_name" validate:"omitempty,max=100"`
	EnglishLastName  string                  `json:"english_last_name" validate:"omitempty,max=100"`
	ThaiTitle        string                  `json:"thai_title" validate:"omitempty,max=50"`
	ThaiFirstName    string                  `json:"thai_first_name" validate:"omitempty,max=100"`
	ThaiLastName     string                  `json:"thai_last_name" validate:"omitempty,max=100"`
	ThaiFullName     string                  `json:"thai_full_name" validate:"omitempty,max=255"`
	Phone            string                  `json:"phone" validate:"omitempty,max=30"`
	Email            string                  `json:"email" validate:"omitempty,email"`
	WorkType         string                  `json:"work_type" validate:"omitempty,max=50"`
	WorkTypeGroup    string                  `json:"work_type_group" validate:"omitempty,max=50"`
	Specialties      []string                `json:"specialties" validate:"omitempty,dive,max=100"`
	SubSpecialties   []string                `json:"sub_specialties" validate:"omitempty,dive,max=100"`
	Approvals        *DoctorApprovalsRequest `json:"approvals"`
	Status           string                  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateDoctorRequest overwrites only the fields that are present
type UpdateDoctorRequest struct {
	Ipus             string                  `json:"ipus" validate:"omitempty,max=100"`
	Department       string                  `json:"department" validate:"omitempty,max=100"`
	DepartmentGroup  string                  `json:"department_group" validate:"omitempty,max=100"`
	CareProviderCode string                  `json:"care_provider_code" validate:"omitempty,max=50"`
	MedicalLicense   string                  `json:"medical_license" validate:"omitempty,max=50"`
	EnglishTitle     string                  `json:"english_title" validate:"omitempty,max=50"`
	EnglishFirstName string                  `json:"english_first_name" validate:"omitempty,max=100"`
	EnglishLastName  string                  `json:"english_last_name" validate:"omitempty,max=100"`
	ThaiTitle        string                  `json:"thai_title" validate:"omitempty,max=50"`
	ThaiFirstName    string                  `json:"thai_first_name" validate:"omitempty,max=100"`
	ThaiLastName     string                  `json:"thai_last_name" validate:"omitempty,max=100"`
	ThaiFullName     string                  `json:"thai_full_name" validate:"omitempty,max=255"`
	Phone            string                  `json:"phone" validate:"omitempty,max=30"`
	Email            string                  `json:"email" validate:"omitempty,email"`
	WorkType         string                  `json:"work_type" validate:"omitempty,max=50"`
	WorkTypeGroup    string                  `json:"work_type_group" validate:"omitempty,max=50"`
	Specialties      []string                `json:"specialties" validate:"omitempty,dive,max=100"`
	SubSpecialties   []string                `json:"sub_specialties" validate:"omitempty,dive,max=100"`
	Approvals        *DoctorApprovalsRequest `json:"approvals"`
	Status           string                  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Response DTOs

type DoctorApprovalsResponse struct {
	Shift bool `json:"shift"`
	Leave bool `json:"leave"`
}

type DoctorResponse struct {
	ID               uuid.UUID               `json:"id"`
	Ipus             string                  `json:"ipus"`
	Department       string                  `json:"department"`
	DepartmentGroup  string                  `json:"department_group,omitempty"`
	CareProviderCode string                  `json:"care_provider_code"`
	MedicalLicense   string                  `json:"medical_license,omitempty"`
	EnglishTitle     string                  `json:"english_title,omitempty"`
	EnglishFirstName string                  `json:"english_first_name,omitempty"`
	EnglishLastName  string                  `json:"english_last_name,omitempty"`
	ThaiTitle        string                  `json:"thai_title,omitempty"`
	ThaiFirstName    string                  `json:"thai_first_name,omitempty"`
	ThaiLastName     string                  `json:"thai_last_name,omitempty"`
	ThaiFullName     string                  `json:"thai_full_name"`
	Phone            string                  `json:"phone,omitempty"`
	Email            string                  `json:"email,omitempty"`
	LineID           string                  `json:"line_id,omitempty"`
	WorkType         string                  `json:"work_type,omitempty"`
	WorkTypeGroup    string                  `json:"work_type_group,omitempty"`
	Specialties      []string                `json:"specialties"`
	SubSpecialties   []string                `json:"sub_specialties"`
	Approvals        DoctorApprovalsResponse `json:"approvals"`
	Status           string                  `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
