package models

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// CreateStateRequest запрос на создание региона
type CreateStateRequest struct {
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	Cities     []string `json:"cities"`
	ActorEmail string   `json:"-"`
}

// UpdateStateRequest запрос на частичное обновление региона
type UpdateStateRequest struct {
	Name       *string  `json:"name,omitempty"`
	Code       *string  `json:"code,omitempty"`
	Cities     []string `json:"cities,omitempty"`
	ActorEmail string   `json:"-"`
}

// ToDomainPatch преобразует запрос в доменный патч
func (r *UpdateStateRequest) ToDomainPatch() domain.StatePatch {
	return domain.StatePatch{
		Name:   r.Name,
		Code:   r.Code,
		Cities: r.Cities,
	}
}

// IsEmpty проверяет, что запрос не содержит изменений
func (r *UpdateStateRequest) IsEmpty() bool {
	return r.Name == nil && r.Code == nil && r.Cities == nil
}

// StateResponse ответ с данными региона
type StateResponse struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Code   string   `json:"code"`
	Cities []string `json:"cities"`
}

// StateListResponse ответ со списком регионов
type StateListResponse struct {
	States []StateResponse `json:"states"`
	Total  int             `json:"total"`
}

// FromDomainState преобразует доменную модель в ответ
func FromDomainState(s *domain.State) *StateResponse {
	cities := s.Cities
	if cities == nil {
		cities = []string{}
	}

	return &StateResponse{
		ID:     s.ID,
		Name:   s.Name,
		Code:   s.Code,
		Cities: cities,
	}
}

// FromDomainStateList преобразует список доменных моделей в ответ
func FromDomainStateList(states []*domain.State) *StateListResponse {
	result := make([]StateResponse, 0, len(states))
	for _, s := range states {
		result = append(result, *FromDomainState(s))
	}

	return &StateListResponse{
		States: result,
		Total:  len(result),
	}
}
