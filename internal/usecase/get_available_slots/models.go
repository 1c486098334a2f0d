package get_available_slots

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// GetAvailableSlotsRequest запрос доступных слотов площадки на дату
type GetAvailableSlotsRequest struct {
	FacilityID int64
	Date       string
}

// SlotDTO часовой слот в сетке доступности
type SlotDTO struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// GetAvailableSlotsResponse ответ с сеткой слотов на дату
type GetAvailableSlotsResponse struct {
	FacilityID int64     `json:"facilityId"`
	Date       string    `json:"date"`
	Slots      []SlotDTO `json:"slots"`
}

// fromDomainSlots преобразует слоты в DTO
func fromDomainSlots(facilityID int64, date string, slots []domain.AvailableSlot) *GetAvailableSlotsResponse {
	result := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		end, _ := s.StartTime.AddMinutes(s.DurationMinutes)
		result = append(result, SlotDTO{
			StartTime: s.StartTime.String(),
			EndTime:   end.String(),
			Available: s.Available,
		})
	}

	return &GetAvailableSlotsResponse{
		FacilityID: facilityID,
		Date:       date,
		Slots:      result,
	}
}
