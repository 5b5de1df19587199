package dto

// Request DTOs

type CreateDoctorRequest struct {
	Name            string                    `json:"name" validate:"required,max=100"`
	Location        *string                   `json:"location" validate:"omitempty,max=200"`
	Designation     string                    `json:"designation" validate:"required,max=100"`
	Qualifications  string                    `json:"qualifications" validate:"required,max=255"`
	ExperienceYears *int                      `json:"experience_years" validate:"omitempty,gte=0"`
	About           string                    `json:"about" validate:"required"`
	IsFeatured      bool                      `json:"is_featured"`
	HospitalID      *int                      `json:"hospital_id" validate:"omitempty,gt=0"`
	SpecialtyIDs    []int                     `json:"specialty_ids" validate:"omitempty,dive,gt=0"`
	Experiences     []CreateExperienceRequest `json:"experiences" validate:"omitempty,dive"`
}

// UpdateDoctorRequest applies only the fields that are present. Sending
// "clear_hospital": true detaches the doctor from its hospital.
type UpdateDoctorRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=100"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	Designation     *string `json:"designation" validate:"omitempty,min=1,max=100"`
	Qualifications  *string `json:"qualifications" validate:"omitempty,min=1,max=255"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0"`
	About           *string `json:"about" validate:"omitempty,min=1"`
	IsFeatured      *bool   `json:"is_featured"`
	HospitalID      *int    `json:"hospital_id" validate:"omitempty,gt=0"`
	ClearHospital   bool    `json:"clear_hospital"`
	SpecialtyIDs    *[]int  `json:"specialty_ids" validate:"omitempty,dive,gt=0"`
}

// Response DTOs

type DoctorResponse struct {
	ID                int                  `json:"id"`
	Name              string               `json:"name"`
	Slug              string               `json:"slug"`
	Location          string               `json:"location,omitempty"`
	Designation       string               `json:"designation"`
	ProfilePictureURL string               `json:"profile_picture_url"`
	Qualifications    string               `json:"qualifications"`
	ExperienceYears   *int                 `json:"experience_years,omitempty"`
	About             string               `json:"about"`
	IsFeatured        bool                 `json:"is_featured"`
	Hospital          *HospitalSummary     `json:"hospital,omitempty"`
	Specialties       []SpecialtyResponse  `json:"specialties"`
	Experiences       []ExperienceResponse `json:"experiences,omitempty"`
	Reviews           []ReviewResponse     `json:"reviews,omitempty"`
	AverageRating     string               `json:"average_rating,omitempty"`
	ReviewCount       int64                `json:"review_count"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
