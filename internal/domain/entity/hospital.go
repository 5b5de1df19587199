package entity

import "strings"

// DefaultHospitalImage is served when a hospital has no uploaded image.
const DefaultHospitalImage = "/static/images/default_hospital.svg"

// HospitalImageDir is the media subdirectory hospital images are stored in.
const HospitalImageDir = "records/images"

type Hospital struct {
	ID             int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Location       string `gorm:"type:varchar(200);not null;index" json:"location" validate:"required,max=200"`
	Address        string `gorm:"type:text" json:"address,omitempty"`
	ContactNumbers string `gorm:"type:text" json:"contact_numbers,omitempty"`
	Diagnosis      string `gorm:"type:text" json:"diagnosis,omitempty"`
	Facilities     string `gorm:"type:text" json:"facilities,omitempty"`
	Image          string `gorm:"type:varchar(255)" json:"image,omitempty" validate:"max=255"`

	// Relationships
	Doctors []Doctor `gorm:"foreignKey:HospitalID" json:"doctors,omitempty" validate:"-"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

func (h Hospital) String() string {
	return h.Name
}

// ContactList splits the comma separated contact numbers, dropping blanks.
func (h *Hospital) ContactList() []string {
	parts := strings.Split(h.ContactNumbers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ImageURL resolves the uploaded image against mediaURL, falling back to the
// default asset.
func (h *Hospital) ImageURL(mediaURL string) string {
	return mediaOrDefault(mediaURL, h.Image, DefaultHospitalImage)
}

// HospitalFilter narrows hospital listings.
type HospitalFilter struct {
	Search   string // name or location, case-insensitive
	Location string // exact location
}
