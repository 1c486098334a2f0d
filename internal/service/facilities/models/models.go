package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

var (
	// ErrInvalidCategory возвращается при некорректной категории площадки
	ErrInvalidCategory = errors.New("invalid facility category")

	// ErrInvalidStatus возвращается при некорректном статусе площадки
	ErrInvalidStatus = errors.New("invalid facility status")

	// ErrInvalidSort возвращается при некорректном параметре сортировки
	ErrInvalidSort = errors.New("invalid sort parameter")
)

// Request модели

// CapacityDTO диапазон вместимости площадки
type CapacityDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PricingDTO прайс-лист площадки
type PricingDTO struct {
	Hourly  float64 `json:"hourly"`
	HalfDay float64 `json:"halfDay"`
	FullDay float64 `json:"fullDay"`
}

// OperatingHoursDTO окно рабочих часов площадки
type OperatingHoursDTO struct {
	Start string `json:"start"` // "08:00"
	End   string `json:"end"`   // "22:00"
}

// ListFacilitiesRequest запрос на получение каталога с фильтрацией
type ListFacilitiesRequest struct {
	Category    *string  `json:"category,omitempty"`
	MinCapacity *int     `json:"minCapacity,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Search      *string  `json:"search,omitempty"`
	SortBy      *string  `json:"sortBy,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListFacilitiesRequest) ToDomainFilter() (domain.FacilityFilter, error) {
	filter := domain.FacilityFilter{
		MinCapacity: r.MinCapacity,
		MaxPrice:    r.MaxPrice,
		Amenities:   r.Amenities,
		Search:      r.Search,
	}

	if r.Category != nil {
		category := domain.FacilityCategory(*r.Category)
		if !domain.IsValidFacilityCategory(category) {
			return filter, ErrInvalidCategory
		}
		filter.Category = &category
	}

	if r.Status != nil {
		status := domain.FacilityStatus(*r.Status)
		if !domain.IsValidFacilityStatus(status) {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainSort конвертирует параметр сортировки в domain значение
func (r *ListFacilitiesRequest) ToDomainSort() (domain.FacilitySort, error) {
	if r.SortBy == nil {
		return domain.SortNameAsc, nil
	}

	sortBy := domain.FacilitySort(*r.SortBy)
	switch sortBy {
	case domain.SortNameAsc, domain.SortNameDesc,
		domain.SortPriceAsc, domain.SortPriceDesc,
		domain.SortRatingDesc, domain.SortCapacityDesc:
		return sortBy, nil
	default:
		return "", ErrInvalidSort
	}
}

// CreateFacilityRequest запрос на создание площадки (только администратор)
type CreateFacilityRequest struct {
	ActorEmail     string            `json:"-"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Location       string            `json:"location"`
	City           string            `json:"city"`
	State          string            `json:"state"`
	Capacity       CapacityDTO       `json:"capacity"`
	Pricing        PricingDTO        `json:"pricing"`
	OperatingHours OperatingHoursDTO `json:"operatingHours"`
	Amenities      []string          `json:"amenities"`
	Status         *string           `json:"status,omitempty"`
}

// UpdateFacilityRequest запрос на обновление площадки (только администратор)
type UpdateFacilityRequest struct {
	ActorEmail     string             `json:"-"`
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Category       *string            `json:"category,omitempty"`
	Location       *string            `json:"location,omitempty"`
	City           *string            `json:"city,omitempty"`
	State          *string            `json:"state,omitempty"`
	Capacity       *CapacityDTO       `json:"capacity,omitempty"`
	Pricing        *PricingDTO        `json:"pricing,omitempty"`
	OperatingHours *OperatingHoursDTO `json:"operatingHours,omitempty"`
	Amenities      []string           `json:"amenities,omitempty"`
	Status         *string            `json:"status,omitempty"`
	Rating         *float64           `json:"rating,omitempty"`
}

// Response модели

// FacilityResponse ответ с данными площадки
type FacilityResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Location       string            `json:"location"`
	City           string            `json:"city"`
	State          string            `json:"state"`
	Capacity       CapacityDTO       `json:"capacity"`
	Pricing        PricingDTO        `json:"pricing"`
	OperatingHours OperatingHoursDTO `json:"operatingHours"`
	Amenities      []string          `json:"amenities"`
	Status         string            `json:"status"`
	Rating         float64           `json:"rating"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// FacilityListResponse ответ со списком площадок
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// Методы конвертации

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	return &FacilityResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Category:    string(f.Category),
		Location:    f.Location,
		City:        f.City,
		State:       f.State,
		Capacity: CapacityDTO{
			Min: f.Capacity.Min,
			Max: f.Capacity.Max,
		},
		Pricing: PricingDTO{
			Hourly:  f.Pricing.Hourly,
			HalfDay: f.Pricing.HalfDay,
			FullDay: f.Pricing.FullDay,
		},
		OperatingHours: OperatingHoursDTO{
			Start: f.OperatingHours.Start.String(),
			End:   f.OperatingHours.End.String(),
		},
		Amenities: f.Amenities,
		Status:    string(f.Status),
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(facilities []*domain.Facility) *FacilityListResponse {
	resp := &FacilityListResponse{
		Facilities: make([]FacilityResponse, 0, len(facilities)),
	}

	for _, f := range facilities {
		if facilityResp := FromDomainFacility(f); facilityResp != nil {
			resp.Facilities = append(resp.Facilities, *facilityResp)
		}
	}

	return resp
}

// ToDomainOperatingHours конвертирует DTO рабочих часов с валидацией
func (h OperatingHoursDTO) ToDomainOperatingHours() (domain.OperatingHours, error) {
	start, err := types.NewTimeStringFromString(h.Start)
	if err != nil {
		return domain.OperatingHours{}, err
	}

	end, err := types.NewTimeStringFromString(h.End)
	if err != nil {
		return domain.OperatingHours{}, err
	}

	return domain.OperatingHours{Start: start, End: end}, nil
}
