// Package listing holds the client-side list mechanics every management page
// shares: search, categorical filters, pagination and page state.
package listing

import "strings"

// All is the categorical filter value that disables the filter.
const All = "all"

// Predicate decides whether an item passes one categorical filter.
type Predicate[T any] func(T) bool

// Filter keeps the items whose designated fields contain search
// (case-insensitive) and that pass every predicate. Order is preserved and
// the input slice is never modified. An empty search matches everything.
func Filter[T any](items []T, search string, fields func(T) []string, preds ...Predicate[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !containsAny(fields(item), needle) {
			continue
		}
		if !passesAll(item, preds) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Matches reports whether a single item would survive Filter.
func Matches[T any](item T, search string, fields func(T) []string, preds ...Predicate[T]) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle != "" && !containsAny(fields(item), needle) {
		return false
	}
	return passesAll(item, preds)
}

// Equals filters on field(item) == value. The value "all" or "" turns the
// filter off.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	if IsAll(value) {
		return nil
	}
	return func(item T) bool {
		return field(item) == value
	}
}

// Where applies fn only when active is true.
func Where[T any](active bool, fn func(T) bool) Predicate[T] {
	if !active {
		return nil
	}
	return fn
}

// IsAll reports whether a filter value means "no filter".
func IsAll(value string) bool {
	return value == "" || value == All
}

// Count returns how many items pass pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

func containsAny(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func passesAll[T any](item T, preds []Predicate[T]) bool {
	for _, pred := range preds {
		if pred != nil && !pred(item) {
			return false
		}
	}
	return true
}
