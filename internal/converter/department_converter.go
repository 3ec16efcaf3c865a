package converter

import (
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"

	"gorm.io/datatypes"
)

// DepartmentToResponse converts a Department entity to DepartmentResponse DTO
func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}

	subs := make([]dto.SubDepartmentResponse, len(department.SubDepartments))
	for i, sub := range department.SubDepartments {
		shifts := make([]dto.ShiftDefinitionResponse, len(sub.Shifts))
		for j, shift := range sub.Shifts {
			shifts[j] = dto.ShiftDefinitionResponse{
				Name:      shift.Name,
				StartTime: shift.StartTime,
				EndTime:   shift.EndTime,
			}
		}
		subs[i] = dto.SubDepartmentResponse{
			Name:   sub.Name,
			Shifts: shifts,
		}
	}

	return &dto.DepartmentResponse{
		ID:             department.ID,
		Department:     department.Name,
		SubDepartments: subs,
		CreatedAt:      department.CreatedAt,
		UpdatedAt:      department.UpdatedAt,
	}
}

// DepartmentsToResponses converts a slice of Department entities to slice of DepartmentResponse DTOs
func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *DepartmentToResponse(&departments[i])
	}
	return responses
}

func ShiftDefinitionFromRequest(req dto.ShiftDefinitionRequest) entity.ShiftDefinition {
	return entity.ShiftDefinition{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
}

func SubDepartmentFromRequest(req dto.SubDepartmentRequest) entity.SubDepartment {
	shifts := make([]entity.ShiftDefinition, len(req.Shifts))
	for i, shift := range req.Shifts {
		shifts[i] = ShiftDefinitionFromRequest(shift)
	}
	return entity.SubDepartment{
		Name:   req.Name,
		Shifts: shifts,
	}
}

func SubDepartmentsFromRequest(reqs []dto.SubDepartmentRequest) datatypes.JSONSlice[entity.SubDepartment] {
	subs := make([]entity.SubDepartment, len(reqs))
	for i, req := range reqs {
		subs[i] = SubDepartmentFromRequest(req)
	}
	return datatypes.JSONSlice[entity.SubDepartment](subs)
}
