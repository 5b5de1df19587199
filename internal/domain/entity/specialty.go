package entity

// Specialty is a medical discipline a doctor practises, e.g. "Cardiology".
type Specialty struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug" validate:"omitempty,max=100"`

	// Relationships
	Doctors []Doctor `gorm:"many2many:doctor_specialties;" json:"doctors,omitempty" validate:"-"`
}

func (Specialty) TableName() string {
	return "specialties"
}

func (s Specialty) String() string {
	return s.Name
}

// SpecialtyCount is a specialty annotated with how many doctors practise it.
type SpecialtyCount struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	DoctorCount int64  `json:"doctor_count"`
}
