package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query string keys shared by every list page.
const (
	SearchKey = "q"
	PageKey   = "page"
)

// State is the search text, categorical selections and 1-indexed page of a
// list screen. It is a value type; the With* methods return updated copies.
type State struct {
	Search  string
	Filters map[string]string
	Page    int
}

// NewState returns page 1 with no search and the named filters set to "all".
func NewState(filterKeys ...string) State {
	s := State{Page: 1, Filters: make(map[string]string, len(filterKeys))}
	for _, k := range filterKeys {
		s.Filters[k] = All
	}
	return s
}

// ParseState reads q, page and the named filter keys from a query string.
// Missing or invalid pages become 1; missing filters become "all".
func ParseState(values url.Values, filterKeys ...string) State {
	s := NewState(filterKeys...)
	s.Search = strings.TrimSpace(values.Get(SearchKey))
	for _, k := range filterKeys {
		if v := strings.TrimSpace(values.Get(k)); v != "" {
			s.Filters[k] = v
		}
	}
	if page, err := strconv.Atoi(values.Get(PageKey)); err == nil && page > 0 {
		s.Page = page
	}
	return s
}

// WithSearch changes the search text and returns to page 1.
func (s State) WithSearch(search string) State {
	out := s.clone()
	out.Search = search
	out.Page = 1
	return out
}

// WithFilter changes one categorical filter and returns to page 1.
func (s State) WithFilter(key, value string) State {
	out := s.clone()
	if value == "" {
		value = All
	}
	out.Filters[key] = value
	out.Page = 1
	return out
}

// WithPage moves to page n without touching search or filters.
func (s State) WithPage(n int) State {
	out := s.clone()
	if n < 1 {
		n = 1
	}
	out.Page = n
	return out
}

// Reset clears search and filters.
func (s State) Reset() State {
	keys := make([]string, 0, len(s.Filters))
	for k := range s.Filters {
		keys = append(keys, k)
	}
	return NewState(keys...)
}

// Filter returns the selection for key, "all" when unset.
func (s State) Filter(key string) string {
	if v, ok := s.Filters[key]; ok && v != "" {
		return v
	}
	return All
}

// Values encodes the state. Page 1 and "all" filters are omitted.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(SearchKey, s.Search)
	}
	keys := make([]string, 0, len(s.Filters))
	for k := range s.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !IsAll(s.Filters[k]) {
			v.Set(k, s.Filters[k])
		}
	}
	if s.Page > 1 {
		v.Set(PageKey, strconv.Itoa(s.Page))
	}
	return v
}

// Link renders "?..." for the state plus extra key/value pairs, e.g.
// Link("modal", "edit", "id", "7").
func (s State) Link(pairs ...string) string {
	v := s.Values()
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	if len(v) == 0 {
		return "?"
	}
	return "?" + v.Encode()
}

// URL appends the state's query to path, e.g. "/admin/cabang?page=2".
func (s State) URL(path string) string {
	v := s.Values()
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// PageLink renders the query for page n.
func (s State) PageLink(n int) string {
	return s.WithPage(n).Link()
}

// Active reports whether any search or filter narrows the list.
func (s State) Active() bool {
	if s.Search != "" {
		return true
	}
	for _, v := range s.Filters {
		if !IsAll(v) {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	out := State{Search: s.Search, Page: s.Page, Filters: make(map[string]string, len(s.Filters))}
	for k, v := range s.Filters {
		out.Filters[k] = v
	}
	return out
}
