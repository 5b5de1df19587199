package entity

import "time"

const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Review is a patient's rating of a doctor. CreatedAt is written on insert
// only and never updated.
type Review struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    int       `gorm:"not null;index" json:"doctor_id" validate:"required"`
	PatientName string    `gorm:"type:varchar(100);not null" json:"patient_name" validate:"required,max=100"`
	Rating      float64   `gorm:"not null;index" json:"rating" validate:"gte=1,lte=5"`
	Comment     string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt   time.Time `gorm:"autoCreateTime;<-:create;index" json:"created_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty" validate:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r Review) String() string {
	doctor := ""
	if r.Doctor != nil {
		doctor = r.Doctor.Name
	}
	return "Review for " + doctor + " by " + r.PatientName
}

// ReviewFilter narrows review listings. CreatedFrom is inclusive and
// CreatedTo exclusive.
type ReviewFilter struct {
	DoctorID    int
	Rating      *float64
	Search      string // doctor name, patient name or comment
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
