package handler

import (
	"errors"
	"net/http"
	"strings"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHospitalRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.CreateHospital(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
		return
	}

	hospital, err := h.hospitalUsecase.GetHospital(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

func (h *HospitalHandler) GetAllHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.HospitalFilter{
		Search:   strings.TrimSpace(query.Get("search")),
		Location: strings.TrimSpace(query.Get("location")),
	}

	hospitals, err := h.hospitalUsecase.GetAllHospitals(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *HospitalHandler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
		return
	}

	var req dto.UpdateHospitalRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.UpdateHospital(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital updated successfully", hospital)
}

// UploadHospitalImage accepts a multipart form with an "image" file.
func (h *HospitalHandler) UploadHospitalImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
		return
	}

	file, err := formFile(r, "image")
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer file.Close()

	hospital, err := h.hospitalUsecase.SetHospitalImage(r.Context(), id, file)
	if err != nil {
		if writeUploadError(w, err) {
			return
		}
		h.writeError(w, err, "Failed to upload hospital image")
		return
	}

	response.Success(w, http.StatusOK, "Hospital image uploaded successfully", hospital)
}

func (h *HospitalHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
		return
	}

	if err := h.hospitalUsecase.DeleteHospital(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital deleted successfully", nil)
}

func (h *HospitalHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, h.validator, err) {
		return
	}
	if errors.Is(err, usecase.ErrHospitalNotFound) {
		response.NotFound(w, "Hospital not found")
		return
	}
	response.InternalServerError(w, fallback)
}
