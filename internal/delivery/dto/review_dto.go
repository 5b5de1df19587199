package dto

import "time"

// Request DTOs

type CreateReviewRequest struct {
	PatientName string  `json:"patient_name" validate:"required,max=100"`
	Rating      float64 `json:"rating" validate:"gte=1,lte=5"`
	Comment     string  `json:"comment" validate:"required"`
}

// Response DTOs

type ReviewResponse struct {
	ID          int       `json:"id"`
	DoctorID    int       `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	PatientName string    `json:"patient_name"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}
