package entity

import "strings"

// DefaultDoctorImage is served when a doctor has no profile picture.
const DefaultDoctorImage = "/static/images/default_doctor.svg"

// DoctorPictureDir is the media subdirectory profile pictures are stored in.
const DoctorPictureDir = "doctors"

// Doctor is the aggregation root for Experience and Review: deleting a doctor
// deletes both. Slug is assigned once, after the first insert, as
// slugify(name)-id.
type Doctor struct {
	ID              int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string  `gorm:"type:varchar(100);not null" json:"name" validate:"required,max=100"`
	Location        *string `gorm:"type:varchar(200);index" json:"location,omitempty" validate:"omitempty,max=200"`
	Designation     string  `gorm:"type:varchar(100);not null" json:"designation" validate:"required,max=100"`
	ProfilePicture  string  `gorm:"type:varchar(255)" json:"profile_picture,omitempty" validate:"max=255"`
	Qualifications  string  `gorm:"type:varchar(255);not null" json:"qualifications" validate:"required,max=255"`
	ExperienceYears *int    `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	About           string  `gorm:"type:text;not null" json:"about" validate:"required"`
	IsFeatured      bool    `gorm:"not null;default:false;index" json:"is_featured"`
	HospitalID      *int    `gorm:"index" json:"hospital_id,omitempty"`
	Slug            string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"max=255"`

	// Relationships
	Hospital    *Hospital    `gorm:"foreignKey:HospitalID;constraint:OnDelete:SET NULL;" json:"hospital,omitempty" validate:"-"`
	Specialties []Specialty  `gorm:"many2many:doctor_specialties;constraint:OnDelete:CASCADE;" json:"specialties,omitempty" validate:"-"`
	Experiences []Experience `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE;" json:"experiences,omitempty" validate:"-"`
	Reviews     []Review     `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE;" json:"reviews,omitempty" validate:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d Doctor) String() string {
	return d.Name
}

// ProfilePictureURL resolves the uploaded picture against mediaURL, falling
// back to the default asset.
func (d *Doctor) ProfilePictureURL(mediaURL string) string {
	return mediaOrDefault(mediaURL, d.ProfilePicture, DefaultDoctorImage)
}

// LocationOrEmpty dereferences Location.
func (d *Doctor) LocationOrEmpty() string {
	if d.Location == nil {
		return ""
	}
	return *d.Location
}

// SpecialtyNames lists the loaded specialties by name.
func (d *Doctor) SpecialtyNames() []string {
	names := make([]string, len(d.Specialties))
	for i, s := range d.Specialties {
		names[i] = s.Name
	}
	return names
}

// DoctorFilter is a domain-level filter for doctor listings and search.
type DoctorFilter struct {
	Search        string // name, designation or specialty name (case-insensitive)
	SpecialtyID   int
	SpecialtySlug string
	HospitalID    int
	Location      string
	FeaturedOnly  bool
}

// RatingSummary aggregates the reviews of one doctor. AvgRating is nil when
// the doctor has no reviews.
type RatingSummary struct {
	DoctorID    int      `json:"doctor_id"`
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount int64    `json:"review_count"`
}

func mediaOrDefault(mediaURL, path, fallback string) string {
	if path == "" {
		return fallback
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimRight(mediaURL, "/") + "/" + path
}
