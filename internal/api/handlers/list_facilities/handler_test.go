package list_facilities

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_AllFilters(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/v1/facilities?category=meeting-room&minCapacity=10&maxPrice=150.5&status=available&amenities=wifi,projector&search=west&sortBy=price_asc", nil)

	req, err := parseQuery(r)
	require.NoError(t, err)

	require.NotNil(t, req.Category)
	assert.Equal(t, "meeting-room", *req.Category)
	require.NotNil(t, req.MinCapacity)
	assert.Equal(t, 10, *req.MinCapacity)
	require.NotNil(t, req.MaxPrice)
	assert.Equal(t, 150.5, *req.MaxPrice)
	require.NotNil(t, req.Status)
	assert.Equal(t, "available", *req.Status)
	assert.Equal(t, []string{"wifi", "projector"}, req.Amenities)
	require.NotNil(t, req.Search)
	assert.Equal(t, "west", *req.Search)
	require.NotNil(t, req.SortBy)
	assert.Equal(t, "price_asc", *req.SortBy)
}

func TestParseQuery_Empty(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/facilities", nil)

	req, err := parseQuery(r)
	require.NoError(t, err)

	assert.Nil(t, req.Category)
	assert.Nil(t, req.MinCapacity)
	assert.Nil(t, req.MaxPrice)
	assert.Nil(t, req.Status)
	assert.Empty(t, req.Amenities)
	assert.Nil(t, req.Search)
	assert.Nil(t, req.SortBy)
}

func TestParseQuery_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "minCapacity не число", query: "minCapacity=ten"},
		{name: "minCapacity отрицательный", query: "minCapacity=-1"},
		{name: "maxPrice не число", query: "maxPrice=cheap"},
		{name: "maxPrice отрицательный", query: "maxPrice=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/facilities?"+tt.query, nil)

			_, err := parseQuery(r)
			assert.Error(t, err)
		})
	}
}
