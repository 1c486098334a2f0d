package domain

import "time"

// State represents a node of the location taxonomy: a state and its cities
// Cities are plain strings scoped to exactly one state; deleting a state
// removes them together with the row
type State struct {
	ID     int64
	Name   string
	Code   string // Короткий идентификатор, не более 2 символов
	Cities []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCity returns true if the city is registered in this state
func (s *State) HasCity(city string) bool {
	for _, c := range s.Cities {
		if c == city {
			return true
		}
	}
	return false
}

// StatePatch данные для обновления штата администратором
// Nil-поля не изменяются; Cities заменяет список целиком
type StatePatch struct {
	Name   *string
	Code   *string
	Cities []string
}
