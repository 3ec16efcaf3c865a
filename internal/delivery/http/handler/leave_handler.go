package handler

import (
	"context"
	"errors"
	"net/http"

	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/usecase"
	"doctor-roster/pkg/response"
	"doctor-roster/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LeaveHandler struct {
	leaveUsecase usecase.LeaveRequestUsecase
	validator    *validator.CustomValidator
}

func NewLeaveHandler(leaveUsecase usecase.LeaveRequestUsecase, validator *validator.CustomValidator) *LeaveHandler {
	return &LeaveHandler{
		leaveUsecase: leaveUsecase,
		validator:    validator,
	}
}

func (h *LeaveHandler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLeaveRequest
	if err := decodeStrict(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	leave, err := h.leaveUsecase.SubmitLeave(r.Context(), &req)
	if err != nil {
		writeLeaveError(w, err, "Failed to create leave request")
		return
	}

	response.Success(w, http.StatusCreated, "Leave request created successfully", leave)
}

func (h *LeaveHandler) GetLeave(w http.ResponseWriter, r *http.Request) {
	leaveID, ok := leaveIDFromPath(w, r)
	if !ok {
		return
	}

	leave, err := h.leaveUsecase.GetLeave(r.Context(), leaveID)
	if err != nil {
		writeLeaveError(w, err, "Failed to get leave request")
		return
	}

	response.Success(w, http.StatusOK, "Leave request retrieved successfully", leave)
}

func (h *LeaveHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.leaveUsecase.ListLeaves(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeLeaveError(w, err, "Failed to get leave requests")
		return
	}

	response.Success(w, http.StatusOK, "Leave requests retrieved successfully", leaves)
}

func (h *LeaveHandler) ListLeavesByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	leaves, err := h.leaveUsecase.ListLeavesByDoctor(r.Context(), doctorID)
	if err != nil {
		writeLeaveError(w, err, "Failed to get leave requests")
		return
	}

	response.Success(w, http.StatusOK, "Leave requests retrieved successfully", leaves)
}

func (h *LeaveHandler) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	leaveID, ok := leaveIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateLeaveRequest
	if err := decodeStrict(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	leave, err := h.leaveUsecase.UpdateLeave(r.Context(), leaveID, &req)
	if err != nil {
		writeLeaveError(w, err, "Failed to update leave request")
		return
	}

	response.Success(w, http.StatusOK, "Leave request updated successfully", leave)
}

func (h *LeaveHandler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	leaveID, ok := leaveIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.leaveUsecase.DeleteLeave(r.Context(), leaveID); err != nil {
		writeLeaveError(w, err, "Failed to delete leave request")
		return
	}

	response.Success(w, http.StatusOK, "Leave request deleted successfully", nil)
}

func (h *LeaveHandler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveUsecase.ApproveLeave, "Leave request approved successfully")
}

func (h *LeaveHandler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveUsecase.RejectLeave, "Leave request rejected successfully")
}

type decideFunc func(ctx context.Context, leaveID uuid.UUID, req *dto.DecideLeaveRequest) (*dto.LeaveResponse, error)

func (h *LeaveHandler) decide(w http.ResponseWriter, r *http.Request, decideLeave decideFunc, message string) {
	leaveID, ok := leaveIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.DecideLeaveRequest
	if err := decodeStrict(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	leave, err := decideLeave(r.Context(), leaveID, &req)
	if err != nil {
		writeLeaveError(w, err, "Failed to update leave request")
		return
	}

	response.Success(w, http.StatusOK, message, leave)
}

// ConfirmLeave is the API form of a candidate answering "ok"
func (h *LeaveHandler) ConfirmLeave(w http.ResponseWriter, r *http.Request) {
	leaveID, ok := leaveIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.ConfirmLeaveRequest
	if err := decodeStrict(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	leave, err := h.leaveUsecase.AttemptAccept(r.Context(), leaveID, req.DoctorID)
	if err != nil {
		writeLeaveError(w, err, "Failed to confirm replacement")
		return
	}

	response.Success(w, http.StatusOK, "Replacement confirmed successfully", leave)
}

func leaveIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	leaveID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid leave request ID", nil)
		return uuid.Nil, false
	}
	return leaveID, true
}

func writeLeaveError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrNoCandidates),
		errors.Is(err, usecase.ErrDuplicateCandidate),
		errors.Is(err, usecase.ErrSelfReplacement),
		errors.Is(err, usecase.ErrApproverRequired):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrLeaveNotFound):
		response.NotFound(w, "Leave request not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrCandidateNotFound):
		response.NotFound(w, "Replacement doctor not found")
	case errors.Is(err, usecase.ErrAlreadyMatched),
		errors.Is(err, usecase.ErrLeaveClosed),
		errors.Is(err, usecase.ErrStatusTransition):
		response.Error(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, usecase.ErrNotEligible):
		response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
