package entity

type Experience struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID     int    `gorm:"not null;index" json:"doctor_id" validate:"required"`
	Position     string `gorm:"type:varchar(100);not null" json:"position" validate:"required,max=100"`
	HospitalName string `gorm:"type:varchar(200);not null" json:"hospital_name" validate:"required,max=200"`
	StartYear    *int   `json:"start_year,omitempty" validate:"omitempty,gte=0"`
	EndYear      *int   `json:"end_year,omitempty" validate:"omitempty,gte=0"`
	Description  string `gorm:"type:text;not null" json:"description"`
}

func (Experience) TableName() string {
	return "experiences"
}

func (e Experience) String() string {
	return e.Position + " at " + e.HospitalName
}

// IsOngoing reports whether the position has no end year yet.
func (e *Experience) IsOngoing() bool {
	return e.EndYear == nil
}

// YearsValid reports whether a present end year does not precede the start.
func (e *Experience) YearsValid() bool {
	if e.StartYear == nil || e.EndYear == nil {
		return true
	}
	return *e.EndYear >= *e.StartYear
}
