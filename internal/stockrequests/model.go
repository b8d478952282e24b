package stockrequests

import (
	"errors"

	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Query keys of the tab and date filters.
const (
	StatusKey = "status"
	DateKey   = "date"
)

var (
	// ErrMissingID flags a record the API returned without an id.
	ErrMissingID = errors.New("stockrequests: record without id")
	// ErrNotPending is returned when approving or rejecting a request that
	// was already decided.
	ErrNotPending = errors.New("stockrequests: request is not pending")
)

// StockRequest is a branch officer's request for more stock of one product.
type StockRequest struct {
	ID        int64                     `json:"id"`
	BranchID  int64                     `json:"branch_id"`
	StaffID   int64                     `json:"petugas_id"`
	ProductID int64                     `json:"product_id"`
	Qty       internalShared.Decimal    `json:"qty_request"`
	Note      string                    `json:"keterangan"`
	Status    string                    `json:"status"`
	CreatedAt *internalShared.Timestamp `json:"created_at,omitempty"`
	UpdatedAt *internalShared.Timestamp `json:"updated_at,omitempty"`
	Branch    *shared.BranchRef         `json:"branch"`
	Product   *shared.ProductRef        `json:"product"`
	Staff     *shared.PersonRef         `json:"petugas"`
}

// Validate implements apiclient.Validator.
func (s StockRequest) Validate() error {
	if s.ID <= 0 {
		return ErrMissingID
	}
	return nil
}

// Pending reports whether the request still awaits a decision.
func (s StockRequest) Pending() bool { return s.Status == StatusPending }

// StatusLabel is the Indonesian badge text of the status.
func (s StockRequest) StatusLabel() string { return StatusLabel(s.Status) }

// BranchName is the requesting branch or "".
func (s StockRequest) BranchName() string { return shared.BranchName(s.Branch) }

// ProductName is the requested product or "".
func (s StockRequest) ProductName() string { return shared.ProductName(s.Product) }

// StaffName is the requesting officer or "".
func (s StockRequest) StaffName() string { return shared.PersonName(s.Staff) }

// CreatedDate is the yyyy-mm-dd creation date used by the date filter.
func (s StockRequest) CreatedDate() string {
	if s.CreatedAt == nil {
		return ""
	}
	return s.CreatedAt.DateKey()
}

// StatusLabel maps a status to its badge text; unknown statuses pass through.
func StatusLabel(status string) string {
	switch status {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Disetujui"
	case StatusRejected:
		return "Ditolak"
	default:
		return status
	}
}

// Tab is one status tab with its record count.
type Tab struct {
	Value  string
	Label  string
	Count  int
	Active bool
}

// RejectForm carries the rejection reason.
type RejectForm struct {
	Reason string `form:"reason" json:"reason" validate:"required"`
}

func requestID(s StockRequest) int64 { return s.ID }

func searchFields(s StockRequest) []string {
	return []string{s.BranchName(), s.ProductName(), s.StaffName()}
}
