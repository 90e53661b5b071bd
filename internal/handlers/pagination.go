package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Page is the envelope for every list response.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// pageParams reads limit/offset query parameters, applying defaults and
// the limit cap. Malformed values fall back to the defaults.
func pageParams(c echo.Context) (limit, offset int) {
	limit = defaultPageLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// newPage builds the list envelope. Count is the total of the unpaginated
// filtered query; next/previous preserve the request's other query
// parameters.
func newPage(c echo.Context, count int64, limit, offset int, results interface{}) Page {
	buildLink := func(linkOffset int) *string {
		u := *c.Request().URL
		q := u.Query()
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(linkOffset))
		u.RawQuery = q.Encode()
		link := u.String()
		return &link
	}

	page := Page{Count: count, Results: results}
	if int64(offset+limit) < count {
		page.Next = buildLink(offset + limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		page.Previous = buildLink(prev)
	}
	return page
}
