package entity

import (
	"reflect"
	"testing"
)

func TestDoctorProfilePictureURL(t *testing.T) {
	tests := []struct {
		name    string
		picture string
		want    string
	}{
		{"fallback", "", DefaultDoctorImage},
		{"relative upload", "doctors/abc.jpg", "/media/doctors/abc.jpg"},
		{"absolute path kept", "/static/custom.jpg", "/static/custom.jpg"},
		{"remote url kept", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Doctor{ProfilePicture: tt.picture}
			if got := d.ProfilePictureURL("/media/"); got != tt.want {
				t.Fatalf("ProfilePictureURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHospitalImageURLFallback(t *testing.T) {
	h := &Hospital{}
	if got := h.ImageURL("/media"); got != DefaultHospitalImage {
		t.Fatalf("ImageURL = %q, want default", got)
	}
	h.Image = "records/images/x.png"
	if got := h.ImageURL("/media"); got != "/media/records/images/x.png" {
		t.Fatalf("ImageURL = %q", got)
	}
}

func TestHospitalContactList(t *testing.T) {
	h := &Hospital{ContactNumbers: " 0171-000, ,+880 2 555 ,"}
	want := []string{"0171-000", "+880 2 555"}
	if got := h.ContactList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ContactList = %#v, want %#v", got, want)
	}
	if got := (&Hospital{}).ContactList(); len(got) != 0 {
		t.Fatalf("empty ContactList = %#v", got)
	}
}

func TestExperienceYears(t *testing.T) {
	start, end, before := 2010, 2015, 2005

	ongoing := Experience{Position: "Consultant", HospitalName: "City Hospital", StartYear: &start}
	if !ongoing.IsOngoing() {
		t.Fatal("experience without end year should be ongoing")
	}
	if got := ongoing.String(); got != "Consultant at City Hospital" {
		t.Fatalf("String = %q", got)
	}

	closed := Experience{StartYear: &start, EndYear: &end}
	if closed.IsOngoing() || !closed.YearsValid() {
		t.Fatal("closed experience should be valid and not ongoing")
	}

	inverted := Experience{StartYear: &start, EndYear: &before}
	if inverted.YearsValid() {
		t.Fatal("end before start should be invalid")
	}
}

func TestReviewString(t *testing.T) {
	r := Review{PatientName: "Rahim", Doctor: &Doctor{Name: "Jane Doe"}}
	if got := r.String(); got != "Review for Jane Doe by Rahim" {
		t.Fatalf("String = %q", got)
	}
}

func TestChangesRoundTrip(t *testing.T) {
	v, err := Changes{}.Value()
	if err != nil || v != nil {
		t.Fatalf("empty Changes.Value = %v, %v", v, err)
	}

	v, err = Changes{New: map[string]interface{}{"name": "Cardiology"}}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var c Changes
	if err := c.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	got, ok := c.New.(map[string]interface{})
	if !ok || got["name"] != "Cardiology" {
		t.Fatalf("scanned New = %#v", c.New)
	}
	if err := c.Scan(42); err == nil {
		t.Fatal("Scan of int should fail")
	}
}
