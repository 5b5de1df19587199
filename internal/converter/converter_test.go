package converter

import (
	"testing"

	"doctor-directory/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestFormatRating(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, ""},
		{ptr(4.0), "4.0"},
		{ptr(4.25), "4.3"},
		{ptr(3.3333333), "3.3"},
		{ptr(5.0), "5.0"},
	}
	for _, tt := range tests {
		if got := FormatRating(tt.in); got != tt.want {
			t.Errorf("FormatRating(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDoctorToResponse(t *testing.T) {
	end := 2020
	d := &entity.Doctor{
		ID:          7,
		Name:        "Jane Doe",
		Slug:        "jane-doe-7",
		Location:    ptr("Dhaka"),
		Designation: "Senior Cardiologist",
		Hospital:    &entity.Hospital{ID: 3, Name: "City Hospital", Location: "Dhaka"},
		Specialties: []entity.Specialty{{ID: 1, Name: "Cardiology", Slug: "cardiology"}},
		Experiences: []entity.Experience{{ID: 1, Position: "Registrar", HospitalName: "General", EndYear: &end}},
	}

	resp := DoctorToResponse(d, "/media/")
	if resp.ProfilePictureURL != entity.DefaultDoctorImage {
		t.Fatalf("ProfilePictureURL = %q", resp.ProfilePictureURL)
	}
	if resp.Location != "Dhaka" || resp.Hospital == nil || resp.Hospital.Name != "City Hospital" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Specialties) != 1 || resp.Specialties[0].Slug != "cardiology" {
		t.Fatalf("Specialties = %+v", resp.Specialties)
	}
	if len(resp.Experiences) != 1 || resp.Experiences[0].Ongoing {
		t.Fatalf("Experiences = %+v", resp.Experiences)
	}
	if resp.Reviews != nil {
		t.Fatalf("Reviews should be omitted, got %+v", resp.Reviews)
	}

	WithRating(resp, &entity.RatingSummary{AvgRating: ptr(4.5), ReviewCount: 2})
	if resp.AverageRating != "4.5" || resp.ReviewCount != 2 {
		t.Fatalf("rating = %q/%d", resp.AverageRating, resp.ReviewCount)
	}
}

func TestDoctorToFeaturedWithoutHospital(t *testing.T) {
	d := &entity.Doctor{ID: 1, Name: "A", ProfilePicture: "doctors/a.jpg"}
	f := DoctorToFeatured(d, entity.RatingSummary{DoctorID: 1}, "/media/")
	if f.HospitalName != "" || f.AverageRating != "" || f.ReviewCount != 0 {
		t.Fatalf("featured = %+v", f)
	}
	if f.ProfilePictureURL != "/media/doctors/a.jpg" {
		t.Fatalf("ProfilePictureURL = %q", f.ProfilePictureURL)
	}
	if f.Specialties == nil {
		t.Fatal("Specialties should be an empty slice, not nil")
	}
}
