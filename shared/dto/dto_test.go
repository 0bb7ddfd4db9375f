package dto_test

import (
	"net/http/httptest"
	"pawstay/shared/constant"
	"pawstay/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "with all valid parameters",
			query:    "?page=2&limit=20",
			expected: dto.QueryParams{Page: 2, Limit: 20},
		},
		{
			name:           "with default request enabled and no parameters",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "with default request disabled and no parameters",
			expected: dto.QueryParams{},
		},
		{
			name:           "with invalid page parameter",
			query:          "?page=invalid",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "with negative page parameter",
			query:          "?page=-1",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "with limit above maximum",
			query:    "?limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/pets"+tt.query, nil)

			q := dto.QueryParams{}
			q.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected []int
	}{
		{name: "no limit returns everything", params: dto.QueryParams{}, expected: []int{1, 2, 3, 4, 5}},
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 2}, expected: []int{1, 2}},
		{name: "last partial page", params: dto.QueryParams{Page: 3, Limit: 2}, expected: []int{5}},
		{name: "past the end", params: dto.QueryParams{Page: 4, Limit: 2}, expected: []int{}},
		{name: "zero page treated as first", params: dto.QueryParams{Limit: 3}, expected: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dto.Paginate(items, tt.params))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 3, dto.CalculateTotalPage(5, 2))
	assert.Equal(t, 1, dto.CalculateTotalPage(2, 2))
	assert.Equal(t, 0, dto.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, dto.CalculateTotalPage(7, 0))
}
