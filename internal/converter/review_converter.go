package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

func ReviewToResponse(r *entity.Review) *dto.ReviewResponse {
	if r == nil {
		return nil
	}
	resp := &dto.ReviewResponse{
		ID:          r.ID,
		DoctorID:    r.DoctorID,
		PatientName: r.PatientName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
	if r.Doctor != nil {
		resp.DoctorName = r.Doctor.Name
	}
	return resp
}

func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}
