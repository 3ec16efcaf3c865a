package converter

import (
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
)

// ShiftRequestToResponse converts a ShiftRequest entity to ShiftRequestResponse DTO
func ShiftRequestToResponse(shift *entity.ShiftRequest) *dto.ShiftRequestResponse {
	if shift == nil {
		return nil
	}

	return &dto.ShiftRequestResponse{
		ID:               shift.ID,
		DoctorID:         shift.DoctorID,
		ThaiFullName:     shift.ThaiFullName,
		CareProviderCode: shift.CareProviderCode,
		Ipus:             shift.Ipus,
		Department:       shift.Department,
		SubDepartment:    shift.SubDepartment,
		ShiftName:        shift.ShiftName,
		ShiftKey:         entity.ShiftKey(shift.SubDepartment, shift.ShiftName),
		Date:             entity.FormatDate(shift.Date),
		StartTime:        shift.StartTime,
		EndTime:          shift.EndTime,
		Remark:           shift.Remark,
		Status:           string(shift.Status),
		RequestedAt:      shift.RequestedAt,
		UpdatedAt:        shift.UpdatedAt,
	}
}

// ShiftRequestsToResponses converts a slice of ShiftRequest entities to slice of ShiftRequestResponse DTOs
func ShiftRequestsToResponses(shifts []entity.ShiftRequest) []dto.ShiftRequestResponse {
	responses := make([]dto.ShiftRequestResponse, len(shifts))
	for i := range shifts {
		responses[i] = *ShiftRequestToResponse(&shifts[i])
	}
	return responses
}

// ShiftTableEntriesToResponses converts projected table rows to their DTOs
func ShiftTableEntriesToResponses(entries []entity.ShiftTableEntry) []dto.ShiftTableEntryResponse {
	responses := make([]dto.ShiftTableEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.ShiftTableEntryResponse{
			ID:                 entry.ID,
			DoctorID:           entry.DoctorID,
			ThaiFullName:       entry.ThaiFullName,
			CareProviderCode:   entry.CareProviderCode,
			Ipus:               entry.Ipus,
			Department:         entry.Department,
			SubDepartment:      entry.SubDepartment,
			ShiftName:          entry.ShiftName,
			ShiftKey:           entry.ShiftKey,
			Date:               entity.FormatDate(entry.Date),
			StartTime:          entry.StartTime,
			EndTime:            entry.EndTime,
			Status:             string(entry.Status),
			Remark:             entry.Remark,
			Replacement:        entry.Replacement,
			LeaveID:            entry.LeaveID,
			OriginalDoctorID:   entry.OriginalDoctorID,
			OriginalDoctorName: entry.OriginalDoctorName,
			IsOnLeave:          entry.IsOnLeave,
			ReplacementName:    entry.ReplacementName,
		}
	}
	return responses
}
