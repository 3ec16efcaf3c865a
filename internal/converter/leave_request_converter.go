package converter

import (
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
)

// LeaveToResponse converts a LeaveRequest entity to LeaveResponse DTO
func LeaveToResponse(leave *entity.LeaveRequest) *dto.LeaveResponse {
	if leave == nil {
		return nil
	}

	candidates := make([]dto.ReplacementDoctorResponse, len(leave.Candidates))
	for i, c := range leave.Candidates {
		candidates[i] = dto.ReplacementDoctorResponse{
			DoctorID:    c.DoctorID,
			DoctorName:  c.DoctorName,
			Status:      string(c.Status),
			RespondedAt: c.RespondedAt,
		}
	}

	response := &dto.LeaveResponse{
		ID:                 leave.ID,
		DoctorID:           leave.DoctorID,
		ThaiFullName:       leave.ThaiFullName,
		CareProviderCode:   leave.CareProviderCode,
		Ipus:               leave.Ipus,
		Department:         leave.Department,
		SubDepartment:      leave.SubDepartment,
		ShiftName:          leave.ShiftName,
		LeaveType:          leave.LeaveType,
		StartDate:          entity.FormatDate(leave.StartDate),
		EndDate:            entity.FormatDate(leave.EndDate),
		Reason:             leave.Reason,
		Status:             string(leave.Status),
		ReplacementDoctors: candidates,
		ApprovedBy:         leave.ApprovedBy,
		ApprovedAt:         leave.ApprovedAt,
		CreatedAt:          leave.CreatedAt,
		UpdatedAt:          leave.UpdatedAt,
	}

	if leave.AcceptedBy.IsSet() {
		response.AcceptedBy = &dto.AcceptedByResponse{
			DoctorID:   *leave.AcceptedBy.DoctorID,
			DoctorName: leave.AcceptedBy.DoctorName,
			LineID:     leave.AcceptedBy.LineID,
			AcceptedAt: leave.AcceptedBy.AcceptedAt,
		}
	}

	return response
}

// LeavesToResponses converts a slice of LeaveRequest entities to slice of LeaveResponse DTOs
func LeavesToResponses(leaves []entity.LeaveRequest) []dto.LeaveResponse {
	responses := make([]dto.LeaveResponse, len(leaves))
	for i := range leaves {
		responses[i] = *LeaveToResponse(&leaves[i])
	}
	return responses
}
