package stockrequests

import (
	"context"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

const (
	msgReasonRequired = "Alasan penolakan harus diisi"
	msgAlreadyDecided = "Permintaan stok sudah diproses"
)

var rejectMessages = shared.Messages{
	"reason.required": msgReasonRequired,
}

// Service holds the stock request workflow.
type Service struct {
	repo      Repository
	validator *shared.Validator
}

// NewService builds the service.
func NewService(repo Repository, validator *shared.Validator) *Service {
	if validator == nil {
		validator = shared.NewValidator()
	}
	return &Service{repo: repo, validator: validator}
}

// List returns every stock request.
func (s *Service) List(ctx context.Context) ([]StockRequest, error) {
	return s.repo.List(ctx)
}

// Approve accepts a pending request.
func (s *Service) Approve(ctx context.Context, req StockRequest) error {
	if err := Decidable(req); err != nil {
		return err
	}
	return s.repo.Approve(ctx, req.ID)
}

// Reject declines a pending request with a reason.
func (s *Service) Reject(ctx context.Context, req StockRequest, form RejectForm) error {
	if err := Decidable(req); err != nil {
		return err
	}
	if err := s.ValidateReject(form); err != nil {
		return err
	}
	return s.repo.Reject(ctx, req.ID, strings.TrimSpace(form.Reason))
}

// ValidateReject requires a non-blank reason.
func (s *Service) ValidateReject(form RejectForm) error {
	form.Reason = strings.TrimSpace(form.Reason)
	return s.validator.Check(form, rejectMessages)
}

// Decidable rejects requests that already left the pending state. A request
// whose status is unknown is let through; the API has the final word.
func Decidable(req StockRequest) error {
	if req.Status == "" || req.Pending() {
		return nil
	}
	return shared.ValidationErrors{{Field: StatusKey, Message: msgAlreadyDecided}}
}

// Controller drives the detail, approve and reject modals.
func (s *Service) Controller() crud.Controller[StockRequest, RejectForm] {
	return crud.Controller[StockRequest, RejectForm]{
		Actions: map[string]crud.Action[StockRequest, RejectForm]{
			crud.ActionApprove: {
				Run:      func(ctx context.Context, req StockRequest, _ RejectForm) error { return s.Approve(ctx, req) },
				Fallback: "Gagal menyetujui permintaan",
			},
			crud.ActionReject: {
				Validate: s.ValidateReject,
				Run:      s.Reject,
				Fallback: "Gagal menolak permintaan",
			},
		},
	}
}

// Tabs counts requests per status tab. Counts cover the whole list, not the
// filtered page.
func Tabs(items []StockRequest, active string) []Tab {
	if active == "" {
		active = listing.All
	}
	tabs := []Tab{
		{Value: listing.All, Label: "Semua", Count: len(items)},
		{Value: StatusPending, Label: "Pending"},
		{Value: StatusApproved, Label: "Disetujui"},
		{Value: StatusRejected, Label: "Ditolak"},
	}
	for i := range tabs {
		if tabs[i].Value != listing.All {
			status := tabs[i].Value
			tabs[i].Count = listing.Count(items, func(r StockRequest) bool { return r.Status == status })
		}
		tabs[i].Active = tabs[i].Value == active
	}
	return tabs
}

// Visible applies the tab, date and search filters in list order.
func Visible(items []StockRequest, state listing.State) []StockRequest {
	date := state.Filter(DateKey)
	return listing.Filter(items, state.Search, searchFields,
		listing.Equals(state.Filter(StatusKey), func(r StockRequest) string { return r.Status }),
		listing.Where(!listing.IsAll(date), func(r StockRequest) bool { return r.CreatedDate() == date }),
	)
}
