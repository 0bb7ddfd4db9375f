package dto

import (
	"net/http"
	"pawstay/shared/constant"
	"strconv"
)

type QueryParams struct {
	Page  int `json:"page"  validate:"omitempty"`
	Limit int `json:"limit" validate:"omitempty"`
}

// FromRequest populates QueryParams from the HTTP request.
// With defaultRequest set, missing values fall back to the first page of DefaultValueLimit items.
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// Without it, absent values stay zero and Paginate returns everything.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = min(limitInt, constant.MaxValueLimit)
		}
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Paginate returns the requested page of items. A zero Limit returns every item.
func Paginate[T any](items []T, q QueryParams) []T {
	if q.Limit <= 0 {
		return items
	}

	start := (max(q.Page, 1) - 1) * q.Limit
	if start >= len(items) {
		return []T{}
	}

	return items[start:min(start+q.Limit, len(items))]
}

func CalculateTotalPage(totalData, limit int) int {
	if limit <= 0 {
		if totalData > 0 {
			return 1
		}

		return 0
	}

	return (totalData + limit - 1) / limit
}
