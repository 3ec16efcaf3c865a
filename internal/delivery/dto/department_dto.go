package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ShiftDefinitionRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"omitempty,datetime=15:04"`   // Format: HH:MM
}

type SubDepartmentRequest struct {
	Name   string                   `json:"name" validate:"required,max=100"`
	Shifts []ShiftDefinitionRequest `json:"shifts" validate:"omitempty,dive"`
}

type CreateDepartmentRequest struct {
	Department     string                 `json:"department" validate:"required,max=150"`
	SubDepartments []SubDepartmentRequest `json:"sub_departments" validate:"omitempty,dive"`
}

// UpdateDepartmentRequest replaces the sub-department list only when it is sent
type UpdateDepartmentRequest struct {
	Department     string                 `json:"department" validate:"omitempty,max=150"`
	SubDepartments []SubDepartmentRequest `json:"sub_departments" validate:"omitempty,dive"`
}

// Response DTOs

type ShiftDefinitionResponse struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

type SubDepartmentResponse struct {
	Name   string                    `json:"name"`
	Shifts []ShiftDefinitionResponse `json:"shifts"`
}

type DepartmentResponse struct {
	ID             uuid.UUID               `json:"id"`
	Department     string                  `json:"department"`
	SubDepartments []SubDepartmentResponse `json:"sub_departments"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}
