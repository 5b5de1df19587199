package dto

// Request DTOs

type CreateHospitalRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Location       string `json:"location" validate:"required,max=200"`
	Address        string `json:"address"`
	ContactNumbers string `json:"contact_numbers"`
	Diagnosis      string `json:"diagnosis"`
	Facilities     string `json:"facilities"`
}

type UpdateHospitalRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location       *string `json:"location" validate:"omitempty,min=1,max=200"`
	Address        *string `json:"address"`
	ContactNumbers *string `json:"contact_numbers"`
	Diagnosis      *string `json:"diagnosis"`
	Facilities     *string `json:"facilities"`
}

// Response DTOs

type HospitalSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type HospitalResponse struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Location       string           `json:"location"`
	Address        string           `json:"address,omitempty"`
	ContactNumbers []string         `json:"contact_numbers"`
	Diagnosis      string           `json:"diagnosis,omitempty"`
	Facilities     string           `json:"facilities,omitempty"`
	ImageURL       string           `json:"image_url"`
	Doctors        []DoctorResponse `json:"doctors,omitempty"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}
