package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// FormatRating renders an average rating with one decimal place, or "" when
// there are no reviews.
func FormatRating(avg *float64) string {
	if avg == nil {
		return ""
	}
	return decimal.NewFromFloat(*avg).StringFixed(1)
}

// DoctorToResponse converts a Doctor entity with whatever relations were
// preloaded. Rating fields are filled by WithRating.
func DoctorToResponse(d *entity.Doctor, mediaURL string) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	resp := &dto.DoctorResponse{
		ID:                d.ID,
		Name:              d.Name,
		Slug:              d.Slug,
		Location:          d.LocationOrEmpty(),
		Designation:       d.Designation,
		ProfilePictureURL: d.ProfilePictureURL(mediaURL),
		Qualifications:    d.Qualifications,
		ExperienceYears:   d.ExperienceYears,
		About:             d.About,
		IsFeatured:        d.IsFeatured,
		Hospital:          HospitalToSummary(d.Hospital),
		Specialties:       SpecialtiesToResponses(d.Specialties),
	}
	if len(d.Experiences) > 0 {
		resp.Experiences = ExperiencesToResponses(d.Experiences)
	}
	if len(d.Reviews) > 0 {
		resp.Reviews = ReviewsToResponses(d.Reviews)
	}
	return resp
}

func DoctorsToResponses(doctors []entity.Doctor, mediaURL string) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i], mediaURL)
	}
	return responses
}

// WithRating copies an aggregated rating onto a doctor response.
func WithRating(resp *dto.DoctorResponse, summary *entity.RatingSummary) *dto.DoctorResponse {
	if resp == nil || summary == nil {
		return resp
	}
	resp.AverageRating = FormatRating(summary.AvgRating)
	resp.ReviewCount = summary.ReviewCount
	return resp
}

func DoctorToFeatured(d *entity.Doctor, summary entity.RatingSummary, mediaURL string) dto.FeaturedDoctor {
	featured := dto.FeaturedDoctor{
		ID:                d.ID,
		Name:              d.Name,
		Slug:              d.Slug,
		Designation:       d.Designation,
		Location:          d.LocationOrEmpty(),
		ProfilePictureURL: d.ProfilePictureURL(mediaURL),
		Specialties:       d.SpecialtyNames(),
		AverageRating:     FormatRating(summary.AvgRating),
		ReviewCount:       summary.ReviewCount,
	}
	if d.Hospital != nil {
		featured.HospitalName = d.Hospital.Name
	}
	return featured
}
