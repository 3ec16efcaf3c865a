package converter

import (
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"

	"gorm.io/datatypes"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	approvals := doctor.Approvals.Data()
	return &dto.DoctorResponse{
		ID:               doctor.ID,
		Ipus:             doctor.Ipus,
		Department:       doctor.Department,
		DepartmentGroup:  doctor.DepartmentGroup,
		CareProviderCode: doctor.CareProviderCode,
		MedicalLicense:   doctor.MedicalLicense,
		EnglishTitle:     doctor.EnglishTitle,
		EnglishFirstName: doctor.EnglishFirstName,
		EnglishLastName:  doctor.EnglishLastName,
		ThaiTitle:        doctor.ThaiTitle,
		ThaiFirstName:    doctor.ThaiFirstName,
		ThaiLastName:     doctor.ThaiLastName,
		ThaiFullName:     doctor.ThaiFullName,
		Phone:            doctor.Phone,
		Email:            doctor.Email,
		LineID:           doctor.ContactHandle(),
		WorkType:         doctor.WorkType,
		WorkTypeGroup:    doctor.WorkTypeGroup,
		Specialties:      nonNilStrings(doctor.Specialties),
		SubSpecialties:   nonNilStrings(doctor.SubSpecialties),
		Approvals: dto.DoctorApprovalsResponse{
			Shift: approvals.Shift,
			Leave: approvals.Leave,
		},
		Status:    string(doctor.Status),
		CreatedAt: doctor.CreatedAt,
		UpdatedAt: doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// CreateDoctorRequestToEntity maps the allow-listed create payload onto a new Doctor
func CreateDoctorRequestToEntity(req *dto.CreateDoctorRequest) *entity.Doctor {
	doctor := &entity.Doctor{
		Ipus:             req.Ipus,
		Department:       req.Department,
		DepartmentGroup:  req.DepartmentGroup,
		CareProviderCode: req.CareProviderCode,
		MedicalLicense:   req.MedicalLicense,
		EnglishTitle:     req.EnglishTitle,
		EnglishFirstName: req.EnglishFirstName,
		EnglishLastName:  req.EnglishLastName,
		ThaiTitle:        req.ThaiTitle,
		ThaiFirstName:    req.ThaiFirstName,
		ThaiLastName:     req.ThaiLastName,
		ThaiFullName:     req.ThaiFullName,
		Phone:            req.Phone,
		Email:            req.Email,
		WorkType:         req.WorkType,
		WorkTypeGroup:    req.WorkTypeGroup,
		Specialties:      entity.NormalizeTags(req.Specialties),
		SubSpecialties:   entity.NormalizeTags(req.SubSpecialties),
		Status:           entity.DoctorStatus(req.Status),
	}
	if req.Approvals != nil {
		doctor.Approvals = datatypesApprovals(req.Approvals)
	}
	if doctor.Status == "" {
		doctor.Status = entity.DoctorStatusActive
	}
	doctor.ComposeThaiFullName()
	return doctor
}

// ApplyUpdateDoctorRequest overwrites the fields present in req
func ApplyUpdateDoctorRequest(doctor *entity.Doctor, req *dto.UpdateDoctorRequest) {
	setString(&doctor.Ipus, req.Ipus)
	setString(&doctor.Department, req.Department)
	setString(&doctor.DepartmentGroup, req.DepartmentGroup)
	setString(&doctor.CareProviderCode, req.CareProviderCode)
	setString(&doctor.MedicalLicense, req.MedicalLicense)
	setString(&doctor.EnglishTitle, req.EnglishTitle)
	setString(&doctor.EnglishFirstName, req.EnglishFirstName)
	setString(&doctor.EnglishLastName, req.EnglishLastName)
	setString(&doctor.Phone, req.Phone)
	setString(&doctor.Email, req.Email)
	setString(&doctor.WorkType, req.WorkType)
	setString(&doctor.WorkTypeGroup, req.WorkTypeGroup)

	nameChanged := req.ThaiTitle != "" || req.ThaiFirstName != "" || req.ThaiLastName != ""
	setString(&doctor.ThaiTitle, req.ThaiTitle)
	setString(&doctor.ThaiFirstName, req.ThaiFirstName)
	setString(&doctor.ThaiLastName, req.ThaiLastName)
	if req.ThaiFullName != "" {
		doctor.ThaiFullName = req.ThaiFullName
	} else if nameChanged {
		doctor.ThaiFullName = ""
		doctor.ComposeThaiFullName()
	}

	if req.Specialties != nil {
		doctor.Specialties = entity.NormalizeTags(req.Specialties)
	}
	if req.SubSpecialties != nil {
		doctor.SubSpecialties = entity.NormalizeTags(req.SubSpecialties)
	}
	if req.Approvals != nil {
		doctor.Approvals = datatypesApprovals(req.Approvals)
	}
	if req.Status != "" {
		doctor.Status = entity.DoctorStatus(req.Status)
	}
}

func datatypesApprovals(req *dto.DoctorApprovalsRequest) datatypes.JSONType[entity.DoctorApprovals] {
	return datatypes.NewJSONType(entity.DoctorApprovals{
		Shift: req.Shift,
		Leave: req.Leave,
	})
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
