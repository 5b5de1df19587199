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

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	review, err := h.reviewUsecase.CreateReview(r.Context(), doctorID, req)
	if err != nil {
		h.writeError(w, err, "Failed to create review")
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}

// SubmitReview is the public endpoint patients post reviews to. Doctors are
// addressed by slug.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		response.NotFound(w, "Doctor not found")
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	review, err := h.reviewUsecase.CreateReviewForSlug(r.Context(), slug, req)
	if err != nil {
		h.writeError(w, err, "Failed to submit review")
		return
	}

	response.Success(w, http.StatusCreated, "Thank you for your review", review)
}

// GetAllReviews supports ?doctor_id=, ?rating= and ?search=.
func (h *ReviewHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID, err := queryInt(r, "doctor_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
		return
	}
	filter := &entity.ReviewFilter{
		DoctorID: doctorID,
		Search:   strings.TrimSpace(query.Get("search")),
	}
	if raw := query.Get("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid rating", nil)
			return
		}
		filter.Rating = &rating
	}
	if filter.CreatedFrom, err = queryTime(r, "created_from", false); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid created_from", nil)
		return
	}
	if filter.CreatedTo, err = queryTime(r, "created_to", true); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid created_to", nil)
		return
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && !filter.CreatedFrom.Before(*filter.CreatedTo) {
		response.Error(w, http.StatusBadRequest, "created_from must be before created_to", nil)
		return
	}

	reviews, err := h.reviewUsecase.GetAllReviews(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID", nil)
		return
	}

	if err := h.reviewUsecase.DeleteReview(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete review")
		return
	}

	response.Success(w, http.StatusOK, "Review deleted successfully", nil)
}

func (h *ReviewHandler) decode(w http.ResponseWriter, r *http.Request) (*dto.CreateReviewRequest, bool) {
	var req dto.CreateReviewRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return &req, true
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if writeValidationError(w, h.validator, err) {
		return
	}
	switch {
	case errors.Is(err, usecase.ErrReviewNotFound):
		response.NotFound(w, "Review not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidRating):
		response.ValidationError(w, map[string]string{"rating": "rating must be between 1.0 and 5.0"})
	default:
		response.InternalServerError(w, fallback)
	}
}
