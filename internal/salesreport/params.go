package salesreport

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dailymart/admin-dashboard/internal/listing"
)

// Query string keys of the report page.
const (
	BranchKey = "branch_id"
	StartKey  = "start_date"
	EndKey    = "end_date"
	StatusKey = "status"
	TypeKey   = "type"
)

// FilterKeys are the categorical keys the report page keeps in its URL.
var FilterKeys = []string{BranchKey, StartKey, EndKey, StatusKey, TypeKey}

// PerPage is the server page size of the report.
const PerPage = 10

const dateLayout = "2006-01-02"

// Params selects one page of the report. Dates are yyyy-MM-dd or empty.
// Status and Type hold "all" when unfiltered.
type Params struct {
	BranchID int64  `json:"branch_id"`
	Start    string `json:"start_date,omitempty"`
	End      string `json:"end_date,omitempty"`
	Status   string `json:"status"`
	Type     string `json:"type"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

// ParamsFrom reads the report selection out of a list state. Unknown
// statuses and types and malformed dates are dropped.
func ParamsFrom(state listing.State) Params {
	p := Params{
		Status:  listing.All,
		Type:    listing.All,
		Page:    state.Page,
		PerPage: PerPage,
	}
	if id, err := strconv.ParseInt(state.Filter(BranchKey), 10, 64); err == nil && id > 0 {
		p.BranchID = id
	}
	p.Start = dateParam(state.Filter(StartKey))
	p.End = dateParam(state.Filter(EndKey))
	if status := state.Filter(StatusKey); allowed(StatusOptions, status) {
		p.Status = status
	}
	if kind := state.Filter(TypeKey); allowed(TypeOptions, kind) {
		p.Type = kind
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// ParseParams is ParamsFrom over a raw query string.
func ParseParams(values url.Values) Params {
	return ParamsFrom(listing.ParseState(values, FilterKeys...))
}

// Ready reports whether a branch is selected.
func (p Params) Ready() bool {
	return p.BranchID > 0
}

// HasRange reports whether both dates are set, which enables the daily
// series.
func (p Params) HasRange() bool {
	return p.Start != "" && p.End != ""
}

// Query is the list request's query string.
func (p Params) Query() url.Values {
	v := url.Values{}
	v.Set("branch_id", strconv.FormatInt(p.BranchID, 10))
	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = PerPage
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))
	if p.Start != "" {
		v.Set("start_date", p.Start)
	}
	if p.End != "" {
		v.Set("end_date", p.End)
	}
	if !listing.IsAll(p.Status) {
		v.Set("status", p.Status)
	}
	switch p.Type {
	case TypeOnline:
		v.Set("is_online", "1")
	case TypeOffline:
		v.Set("is_online", "0")
	}
	return v
}

// DailyQuery is the daily series request's query string.
func (p Params) DailyQuery() url.Values {
	v := url.Values{}
	v.Set("branch_id", strconv.FormatInt(p.BranchID, 10))
	v.Set("start_date", p.Start)
	v.Set("end_date", p.End)
	return v
}

// Period renders the date range as "dd/MM/yyyy - dd/MM/yyyy", with "Semua"
// for an open end.
func (p Params) Period() string {
	return periodEnd(p.Start) + " - " + periodEnd(p.End)
}

func periodEnd(date string) string {
	if date == "" {
		return "Semua"
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("02/01/2006")
}

func dateParam(value string) string {
	if listing.IsAll(value) {
		return ""
	}
	value = strings.TrimSpace(value)
	if _, err := time.Parse(dateLayout, value); err != nil {
		return ""
	}
	return value
}

func allowed(options []StatusOption, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// State is the list state that reproduces p in the page URL.
func (p Params) State() listing.State {
	s := listing.NewState(FilterKeys...)
	if p.BranchID > 0 {
		s.Filters[BranchKey] = strconv.FormatInt(p.BranchID, 10)
	}
	if p.Start != "" {
		s.Filters[StartKey] = p.Start
	}
	if p.End != "" {
		s.Filters[EndKey] = p.End
	}
	if p.Status != "" {
		s.Filters[StatusKey] = p.Status
	}
	if p.Type != "" {
		s.Filters[TypeKey] = p.Type
	}
	if p.Page > 1 {
		s.Page = p.Page
	}
	return s
}
