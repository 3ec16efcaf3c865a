package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ShiftDefinition is a named shift inside a sub-department (e.g. "เวรเช้า" 08:00-16:00)
type ShiftDefinition struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// SubDepartment owns an ordered list of shift definitions
type SubDepartment struct {
	Name   string            `json:"name"`
	Shifts []ShiftDefinition `json:"shifts"`
}

// Department is reference taxonomy data: department -> sub-departments -> shifts
type Department struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string                             `gorm:"column:department;type:varchar(150);not null;index" json:"department"`
	SubDepartments datatypes.JSONSlice[SubDepartment] `gorm:"type:jsonb;not null;default:'[]'" json:"sub_departments"`
	CreatedAt      time.Time                          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// SubDepartmentIndex returns the position of the named sub-department, or -1
func (d *Department) SubDepartmentIndex(name string) int {
	for i, sub := range d.SubDepartments {
		if sub.Name == name {
			return i
		}
	}
	return -1
}

// HasShift reports whether the sub-department defines the named shift
func (d *Department) HasShift(subDepartment, shiftName string) bool {
	idx := d.SubDepartmentIndex(subDepartment)
	if idx < 0 {
		return false
	}
	for _, shift := range d.SubDepartments[idx].Shifts {
		if shift.Name == shiftName {
			return true
		}
	}
	return false
}
