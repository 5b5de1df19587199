package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

func SpecialtyToResponse(s *entity.Specialty) *dto.SpecialtyResponse {
	if s == nil {
		return nil
	}
	return &dto.SpecialtyResponse{ID: s.ID, Name: s.Name, Slug: s.Slug}
}

func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i := range specialties {
		responses[i] = *SpecialtyToResponse(&specialties[i])
	}
	return responses
}

func SpecialtyCountsToResponses(counts []entity.SpecialtyCount) []dto.SpecialtyCountResponse {
	responses := make([]dto.SpecialtyCountResponse, len(counts))
	for i, c := range counts {
		responses[i] = dto.SpecialtyCountResponse{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			DoctorCount: c.DoctorCount,
		}
	}
	return responses
}
