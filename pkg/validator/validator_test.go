package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftPayload struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"`
}

type samplePayload struct {
	Date   string         `json:"date" validate:"required,datetime=2006-01-02"`
	Status string         `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Email  string         `json:"email" validate:"omitempty,email"`
	Shifts []shiftPayload `json:"shifts" validate:"omitempty,dive"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&samplePayload{
		Date:   "01/02/2024",
		Status: "done",
		Email:  "not-an-email",
		Shifts: []shiftPayload{{StartTime: "8am"}},
	})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "date must match the format YYYY-MM-DD", errs["date"])
	assert.Equal(t, "status must be one of: pending, approved, rejected", errs["status"])
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "name is required", errs["shifts[0].name"])
	assert.Equal(t, "start_time must match the format HH:MM", errs["shifts[0].start_time"])
}

func TestValidate_OK(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&samplePayload{
		Date:   "2024-01-02",
		Status: "approved",
		Shifts: []shiftPayload{{Name: "เวรเช้า", StartTime: "08:00"}},
	})

	assert.NoError(t, err)
}
