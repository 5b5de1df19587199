package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/response"
	"doctor-directory/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAllDoctors supports ?search=, ?hospital_id=, ?specialty_id=,
// ?location= and ?featured=true.
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	hospitalID, err := queryInt(r, "hospital_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital_id", nil)
		return
	}
	specialtyID, err := queryInt(r, "specialty_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty_id", nil)
		return
	}
	featured, _ := strconv.ParseBool(query.Get("featured"))

	filter := &entity.DoctorFilter{
		Search:       strings.TrimSpace(query.Get("search")),
		HospitalID:   hospitalID,
		SpecialtyID:  specialtyID,
		Location:     strings.TrimSpace(query.Get("location")),
		FeaturedOnly: featured,
	}

	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

// UploadProfilePicture accepts a multipart form with a "picture" file.
func (h *DoctorHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	file, err := formFile(r, "picture")
	if err != nil {
		writeUploadError(w, err)
		return
	}
	defer file.Close()

	doctor, err := h.doctorUsecase.SetProfilePicture(r.Context(), id, file)
	if err != nil {
		if writeUploadError(w, err) {
			return
		}
		h.writeError(w, err, "Failed to upload profile picture")
		return
	}

	response.Success(w, http.StatusOK, "Profile picture uploaded successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, h.validator, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrDoctorHospitalNotFound):
		response.Error(w, http.StatusBadRequest, "Hospital not found", nil)
	case errors.Is(err, usecase.ErrUnknownSpecialty):
		response.Error(w, http.StatusBadRequest, "One or more specialties do not exist", nil)
	case errors.Is(err, usecase.ErrInvalidExperienceYears):
		response.Error(w, http.StatusBadRequest, "End year cannot precede start year", nil)
	case errors.Is(err, usecase.ErrDoctorSlugTaken):
		response.Conflict(w, "Doctor slug already taken")
	default:
		response.InternalServerError(w, fallback)
	}
}
