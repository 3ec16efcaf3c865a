package usecase

import (
	"context"
	"errors"

	"doctor-roster/internal/converter"
	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/domain/entity"
	"doctor-roster/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrSubDepartmentNotFound  = errors.New("sub-department not found")
	ErrDuplicateSubDepartment = errors.New("sub-department already exists")
	ErrDuplicateShift         = errors.New("shift already exists in sub-department")
)

type DepartmentUsecase interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, departmentID uuid.UUID) (*dto.DepartmentResponse, error)
	GetAllDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	UpdateDepartment(ctx context.Context, departmentID uuid.UUID, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, departmentID uuid.UUID) error
	AddSubDepartment(ctx context.Context, departmentID uuid.UUID, req *dto.SubDepartmentRequest) (*dto.DepartmentResponse, error)
	AddShift(ctx context.Context, departmentID uuid.UUID, subDepartment string, req *dto.ShiftDefinitionRequest) (*dto.DepartmentResponse, error)
}

type departmentUsecase struct {
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
}

func NewDepartmentUsecase(log *logrus.Logger, departmentRepo repository.DepartmentRepository) DepartmentUsecase {
	return &departmentUsecase{
		log:            log,
		departmentRepo: departmentRepo,
	}
}

func (u *departmentUsecase) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{
		Name:           req.Department,
		SubDepartments: converter.SubDepartmentsFromRequest(req.SubDepartments),
	}
	if err := checkSubDepartments(department.SubDepartments); err != nil {
		return nil, err
	}

	if err := u.departmentRepo.Create(ctx, department); err != nil {
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) GetDepartment(ctx context.Context, departmentID uuid.UUID) (*dto.DepartmentResponse, error) {
	department, err := u.findDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) GetAllDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *departmentUsecase) UpdateDepartment(ctx context.Context, departmentID uuid.UUID, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := u.findDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if req.Department != "" {
		department.Name = req.Department
	}
	if req.SubDepartments != nil {
		department.SubDepartments = converter.SubDepartmentsFromRequest(req.SubDepartments)
		if err := checkSubDepartments(department.SubDepartments); err != nil {
			return nil, err
		}
	}

	if err := u.departmentRepo.Update(ctx, department); err != nil {
		u.log.Warnf("Failed to update department: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) DeleteDepartment(ctx context.Context, departmentID uuid.UUID) error {
	affected, err := u.departmentRepo.Delete(ctx, departmentID)
	if err != nil {
		u.log.Warnf("Failed to delete department: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}

func (u *departmentUsecase) AddSubDepartment(ctx context.Context, departmentID uuid.UUID, req *dto.SubDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := u.findDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if department.SubDepartmentIndex(req.Name) >= 0 {
		return nil, ErrDuplicateSubDepartment
	}

	sub := converter.SubDepartmentFromRequest(*req)
	if err := checkShifts(sub.Shifts); err != nil {
		return nil, err
	}

	affected, err := u.departmentRepo.AppendSubDepartment(ctx, departmentID, sub)
	if err != nil {
		u.log.Warnf("Failed to append sub-department: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrDepartmentNotFound
	}

	return u.GetDepartment(ctx, departmentID)
}

func (u *departmentUsecase) AddShift(ctx context.Context, departmentID uuid.UUID, subDepartment string, req *dto.ShiftDefinitionRequest) (*dto.DepartmentResponse, error) {
	department, err := u.findDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if department.SubDepartmentIndex(subDepartment) < 0 {
		return nil, ErrSubDepartmentNotFound
	}
	if department.HasShift(subDepartment, req.Name) {
		return nil, ErrDuplicateShift
	}

	affected, err := u.departmentRepo.AppendShift(ctx, departmentID, subDepartment, converter.ShiftDefinitionFromRequest(*req))
	if err != nil {
		u.log.Warnf("Failed to append shift: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSubDepartmentNotFound
	}

	return u.GetDepartment(ctx, departmentID)
}

func (u *departmentUsecase) findDepartment(ctx context.Context, departmentID uuid.UUID) (*entity.Department, error) {
	department, err := u.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	return department, nil
}

func checkSubDepartments(subs []entity.SubDepartment) error {
	seen := make(map[string]struct{}, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.Name]; ok {
			return ErrDuplicateSubDepartment
		}
		seen[sub.Name] = struct{}{}
		if err := checkShifts(sub.Shifts); err != nil {
			return err
		}
	}
	return nil
}

func checkShifts(shifts []entity.ShiftDefinition) error {
	seen := make(map[string]struct{}, len(shifts))
	for _, shift := range shifts {
		if _, ok := seen[shift.Name]; ok {
			return ErrDuplicateShift
		}
		seen[shift.Name] = struct{}{}
	}
	return nil
}
