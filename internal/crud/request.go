package crud

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrInvalidID is returned for a non-numeric or non-positive {id}.
var ErrInvalidID = errors.New("crud: invalid id")

// ParseID reads the {id} route parameter.
func ParseID(r *http.Request) (int64, error) {
	return ParseParam(r, "id")
}

// ParseParam reads a positive integer route parameter.
func ParseParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// FindByID returns a lookup over items for FromQuery.
func FindByID[T any](items []T, id func(T) int64) func(string) (T, bool) {
	return func(raw string) (T, bool) {
		want, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			for _, item := range items {
				if id(item) == want {
					return item, true
				}
			}
		}
		var zero T
		return zero, false
	}
}

// FindLoaded looks up id among items, for POST handlers that act on a record
// from the list.
func FindLoaded[T any](items []T, want int64, id func(T) int64) (T, bool) {
	return FindByID(items, id)(strconv.FormatInt(want, 10))
}

// StatusFor picks the response status for a failed submit: 422 for
// validation, 401 when the API rejected the token, 400 otherwise.
func StatusFor(err error) int {
	var verrs shared.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case apiclient.IsUnauthorized(err):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
