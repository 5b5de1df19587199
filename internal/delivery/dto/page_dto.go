package dto

// DoctorListPage backs the doctor directory page.
type DoctorListPage struct {
	Doctors []DoctorResponse
}

// HospitalListPage backs the hospital directory page.
type HospitalListPage struct {
	Hospitals []HospitalResponse
}

type SearchQuery struct {
	Q         string
	Specialty string
	Location  string
}

// IsEmpty reports whether no search criterion was given.
func (q SearchQuery) IsEmpty() bool {
	return q.Q == "" && q.Specialty == "" && q.Location == ""
}

type SearchPage struct {
	Query       SearchQuery
	Searched    bool
	Results     []DoctorResponse
	Specialties []SpecialtyResponse
	Locations   []string
}
