package dto

// Request DTOs

type CreateExperienceRequest struct {
	Position     string `json:"position" validate:"required,max=100"`
	HospitalName string `json:"hospital_name" validate:"required,max=200"`
	StartYear    *int   `json:"start_year" validate:"omitempty,gte=0"`
	EndYear      *int   `json:"end_year" validate:"omitempty,gte=0"`
	Description  string `json:"description"`
}

type UpdateExperienceRequest struct {
	Position     *string `json:"position" validate:"omitempty,min=1,max=100"`
	HospitalName *string `json:"hospital_name" validate:"omitempty,min=1,max=200"`
	StartYear    *int    `json:"start_year" validate:"omitempty,gte=0"`
	EndYear      *int    `json:"end_year" validate:"omitempty,gte=0"`
	ClearEndYear bool    `json:"clear_end_year"`
	Description  *string `json:"description"`
}

// Response DTOs

type ExperienceResponse struct {
	ID           int    `json:"id"`
	DoctorID     int    `json:"doctor_id"`
	Position     string `json:"position"`
	HospitalName string `json:"hospital_name"`
	StartYear    *int   `json:"start_year,omitempty"`
	EndYear      *int   `json:"end_year,omitempty"`
	Ongoing      bool   `json:"ongoing"`
	Description  string `json:"description"`
}
