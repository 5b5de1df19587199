package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

func ExperienceToResponse(e *entity.Experience) *dto.ExperienceResponse {
	if e == nil {
		return nil
	}
	return &dto.ExperienceResponse{
		ID:           e.ID,
		DoctorID:     e.DoctorID,
		Position:     e.Position,
		HospitalName: e.HospitalName,
		StartYear:    e.StartYear,
		EndYear:      e.EndYear,
		Ongoing:      e.IsOngoing(),
		Description:  e.Description,
	}
}

func ExperiencesToResponses(experiences []entity.Experience) []dto.ExperienceResponse {
	responses := make([]dto.ExperienceResponse, len(experiences))
	for i := range experiences {
		responses[i] = *ExperienceToResponse(&experiences[i])
	}
	return responses
}
