package handler

import (
	"errors"
	"net/http"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"
)

type ExperienceHandler struct {
	experienceUsecase usecase.ExperienceUsecase
	validator         *validator.CustomValidator
}

func NewExperienceHandler(experienceUsecase usecase.ExperienceUsecase, validator *validator.CustomValidator) *ExperienceHandler {
	return &ExperienceHandler{
		experienceUsecase: experienceUsecase,
		validator:         validator,
	}
}

func (h *ExperienceHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.CreateExperienceRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	experience, err := h.experienceUsecase.CreateExperience(r.Context(), doctorID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create experience")
		return
	}

	response.Success(w, http.StatusCreated, "Experience created successfully", experience)
}

func (h *ExperienceHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid experience ID", nil)
		return
	}

	var req dto.UpdateExperienceRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	experience, err := h.experienceUsecase.UpdateExperience(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update experience")
		return
	}

	response.Success(w, http.StatusOK, "Experience updated successfully", experience)
}

func (h *ExperienceHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid experience ID", nil)
		return
	}

	if err := h.experienceUsecase.DeleteExperience(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete experience")
		return
	}

	response.Success(w, http.StatusOK, "Experience deleted successfully", nil)
}

func (h *ExperienceHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, h.validator, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrExperienceNotFound):
		response.NotFound(w, "Experience not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidExperienceYears):
		response.Error(w, http.StatusBadRequest, "End year cannot precede start year", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
