package converter

import (
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity, including any loaded
// doctors, to its response DTO.
func HospitalToResponse(h *entity.Hospital, mediaURL string) *dto.HospitalResponse {
	if h == nil {
		return nil
	}

	resp := &dto.HospitalResponse{
		ID:             h.ID,
		Name:           h.Name,
		Location:       h.Location,
		Address:        h.Address,
		ContactNumbers: h.ContactList(),
		Diagnosis:      h.Diagnosis,
		Facilities:     h.Facilities,
		ImageURL:       h.ImageURL(mediaURL),
	}
	if len(h.Doctors) > 0 {
		resp.Doctors = DoctorsToResponses(h.Doctors, mediaURL)
	}
	return resp
}

func HospitalsToResponses(hospitals []entity.Hospital, mediaURL string) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = *HospitalToResponse(&hospitals[i], mediaURL)
	}
	return responses
}

func HospitalToSummary(h *entity.Hospital) *dto.HospitalSummary {
	if h == nil {
		return nil
	}
	return &dto.HospitalSummary{ID: h.ID, Name: h.Name, Location: h.Location}
}

func HospitalsToCards(hospitals []entity.Hospital, mediaURL string) []dto.HospitalCard {
	cards := make([]dto.HospitalCard, len(hospitals))
	for i := range hospitals {
		cards[i] = dto.HospitalCard{
			ID:       hospitals[i].ID,
			Name:     hospitals[i].Name,
			Location: hospitals[i].Location,
			ImageURL: hospitals[i].ImageURL(mediaURL),
		}
	}
	return cards
}
