package handler

import (
	"errors"
	"net/http"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.CreateSpecialty(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create specialty")
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *SpecialtyHandler) GetSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	specialty, err := h.specialtyUsecase.GetSpecialty(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

func (h *SpecialtyHandler) GetAllSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.GetAllSpecialties(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	var req dto.UpdateSpecialtyRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.UpdateSpecialty(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

func (h *SpecialtyHandler) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	if err := h.specialtyUsecase.DeleteSpecialty(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}

func (h *SpecialtyHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, h.validator, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrSpecialtyNotFound):
		response.NotFound(w, "Specialty not found")
	case errors.Is(err, usecase.ErrSpecialtyExists):
		response.Conflict(w, "Specialty name already exists")
	case errors.Is(err, usecase.ErrSpecialtySlugTaken):
		response.Conflict(w, "Specialty slug already taken")
	default:
		response.InternalServerError(w, fallback)
	}
}
