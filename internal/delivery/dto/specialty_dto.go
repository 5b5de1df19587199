package dto

// Request DTOs

type CreateSpecialtyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"omitempty,max=100"`
}

type UpdateSpecialtyRequest struct {
	Name string `json:"name" validate:"omitempty,max=100"`
	Slug string `json:"slug" validate:"omitempty,max=100"`
}

// Response DTOs

type SpecialtyResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SpecialtyCountResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	DoctorCount int64  `json:"doctor_count"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
