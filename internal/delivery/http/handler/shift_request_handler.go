package handler

import (
	"errors"
	"fmt"
	"net/http"

	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/usecase"
	"doctor-roster/pkg/response"
	"doctor-roster/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ShiftRequestHandler struct {
	shiftRequestUsecase usecase.ShiftRequestUsecase
	shiftTableUsecase   usecase.ShiftTableUsecase
	validator           *validator.CustomValidator
}

func NewShiftRequestHandler(
	shiftRequestUsecase usecase.ShiftRequestUsecase,
	shiftTableUsecase usecase.ShiftTableUsecase,
	validator *validator.CustomValidator,
) *ShiftRequestHandler {
	return &ShiftRequestHandler{
		shiftRequestUsecase: shiftRequestUsecase,
		shiftTableUsecase:   shiftTableUsecase,
		validator:           validator,
	}
}

func (h *ShiftRequestHandler) CreateShiftRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateShiftRequestRequest
	if err := decodeStrict(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	shift, err := h.shiftRequestUsecase.CreateShiftRequest(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to create shift request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Shift request created successfully", shift)
}

func (h *ShiftRequestHandler) GetShiftRequest(w http.ResponseWriter, r *http.Request) {
	shiftRequestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid shift request ID", nil)
		return
	}

	shift, err := h.shiftRequestUsecase.GetShiftRequest(r.Context(), shiftRequestID)
	if err != nil {
		if errors.Is(err, usecase.ErrShiftRequestNotFound) {
			response.NotFound(w, "Shift request not found")
			return
		}
		response.InternalServerError(w, "Failed to get shift request")
		return
	}

	response.Success(w, http.StatusOK, "Shift request retrieved successfully", shift)
}

func (h *ShiftRequestHandler) ListShiftRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	shifts, err := h.shiftRequestUsecase.ListShiftRequests(r.Context(), query.Get("status"), query.Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrInvalidDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get shift requests")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift requests retrieved successfully", shifts)
}

func (h *ShiftRequestHandler) UpdateShiftRequestStatus(w http.ResponseWriter, r *http.Request) {
	shiftRequestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid shift request ID", nil)
		return
	}

	var req dto.UpdateShiftRequestStatusRequest
	if err := decodeStrict(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	shift, err := h.shiftRequestUsecase.UpdateShiftRequestStatus(r.Context(), shiftRequestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrShiftRequestNotFound):
			response.NotFound(w, "Shift request not found")
		case errors.Is(err, usecase.ErrInvalidStatus):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update shift request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift request updated successfully", shift)
}

func (h *ShiftRequestHandler) GetShiftTable(w http.ResponseWriter, r *http.Request) {
	req, ok := h.tableRequest(w, r)
	if !ok {
		return
	}

	table, err := h.shiftTableUsecase.GetTable(r.Context(), req)
	if err != nil {
		h.writeTableError(w, err, "Failed to get shift table")
		return
	}

	response.Success(w, http.StatusOK, "Shift table retrieved successfully", table)
}

func (h *ShiftRequestHandler) ExportShiftTable(w http.ResponseWriter, r *http.Request) {
	req, ok := h.tableRequest(w, r)
	if !ok {
		return
	}

	content, err := h.shiftTableUsecase.ExportTable(r.Context(), req)
	if err != nil {
		h.writeTableError(w, err, "Failed to export shift table")
		return
	}

	filename := fmt.Sprintf("shift-table-%s-%s-%s-%s.xlsx", req.Ipus, req.Department, req.StartDate, req.EndDate)
	response.File(w, xlsxContentType, filename, content)
}

func (h *ShiftRequestHandler) tableRequest(w http.ResponseWriter, r *http.Request) (*dto.ShiftTableRequest, bool) {
	query := r.URL.Query()
	req := &dto.ShiftTableRequest{
		Ipus:       query.Get("ipus"),
		Department: query.Get("department"),
		StartDate:  query.Get("start"),
		EndDate:    query.Get("end"),
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return req, true
}

func (h *ShiftRequestHandler) writeTableError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrRangeTooLarge):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
