package dto

// FeaturedDoctor is one card in the home page's featured listing.
type FeaturedDoctor struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Designation       string   `json:"designation"`
	Location          string   `json:"location,omitempty"`
	ProfilePictureURL string   `json:"profile_picture_url"`
	HospitalName      string   `json:"hospital_name,omitempty"`
	Specialties       []string `json:"specialties"`
	AverageRating     string   `json:"average_rating,omitempty"`
	ReviewCount       int64    `json:"review_count"`
}

type HospitalCard struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	ImageURL string `json:"image_url"`
}

// HomeView is the complete context of the home page. It is cached as JSON.
type HomeView struct {
	Specialties         []SpecialtyResponse      `json:"specialties"`
	Locations           []string                 `json:"locations"`
	TotalDoctors        int64                    `json:"total_doctors"`
	TotalHospitals      int64                    `json:"total_hospitals"`
	TotalReviews        int64                    `json:"total_reviews"`
	DistrictsCovered    int64                    `json:"districts_covered"`
	FeaturedDoctors     []FeaturedDoctor         `json:"featured_doctors"`
	FeaturedSpecialties []SpecialtyResponse      `json:"featured_specialties"`
	LatestHospitals     []HospitalCard           `json:"latest_hospitals"`
	TopSpecialties      []SpecialtyCountResponse `json:"top_specialties"`
}
