// Package salesreport builds the per-branch transaction report: the server
// paginated list, its summary, the optional daily series and the exports of
// whatever report was last loaded.
package salesreport

import (
	"strconv"
	"time"

	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// Transaction statuses.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Transaction types.
const (
	TypeOnline  = "online"
	TypeOffline = "offline"
)

// WalkIn names a transaction without a customer.
const WalkIn = "Walk-in"

var statusLabels = map[string]string{
	StatusPending:   "Pending",
	StatusPaid:      "Dibayar",
	StatusCompleted: "Selesai",
	StatusCancelled: "Dibatalkan",
}

var paymentLabels = map[string]string{
	"cash":     "Tunai",
	"transfer": "Transfer",
	"ewallet":  "E-Wallet",
}

// Transaction is one sale of a branch.
type Transaction struct {
	ID             int64                     `json:"id"`
	BranchID       int64                     `json:"branch_id"`
	Online         internalShared.Flag       `json:"is_online"`
	Total          internalShared.Decimal    `json:"total"`
	PaymentMethod  string                    `json:"payment_method"`
	Status         string                    `json:"status"`
	DeliveryStatus string                    `json:"delivery_status"`
	CreatedAt      *internalShared.Timestamp `json:"created_at"`
	Details        []Detail                  `json:"details"`
	Customer       *shared.PersonRef         `json:"pelanggan"`
	Staff          *shared.PersonRef         `json:"petugas"`
	Courier        *shared.PersonRef         `json:"kurir"`
	Branch         *shared.BranchRef         `json:"branch"`
}

// Detail is one line item of a transaction.
type Detail struct {
	ID       int64                  `json:"id"`
	Product  *DetailProduct         `json:"product"`
	Qty      internalShared.Decimal `json:"qty"`
	Subtotal internalShared.Decimal `json:"subtotal"`
}

// DetailProduct is the product sold on a line item.
type DetailProduct struct {
	ID       int64                  `json:"id"`
	Name     string                 `json:"nama_produk"`
	Price    internalShared.Decimal `json:"harga"`
	Category *shared.CategoryRef    `json:"kategori,omitempty"`
}

// Validate implements apiclient.Validator.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return shared.ErrMissingID
	}
	return nil
}

// CustomerName is the customer's account name or "Walk-in".
func (t Transaction) CustomerName() string {
	if name := shared.PersonName(t.Customer); name != "" {
		return name
	}
	return WalkIn
}

// CustomerPhone is the customer's phone number or "".
func (t Transaction) CustomerPhone() string {
	if t.Customer == nil {
		return ""
	}
	return t.Customer.Phone
}

// StaffName is the cashier's name or "-".
func (t Transaction) StaffName() string {
	return internalShared.OrDash(shared.PersonName(t.Staff))
}

// CourierName is the courier's name or "-".
func (t Transaction) CourierName() string {
	return internalShared.OrDash(shared.PersonName(t.Courier))
}

// TypeLabel is "Online" or "Offline".
func (t Transaction) TypeLabel() string {
	if t.Online {
		return "Online"
	}
	return "Offline"
}

// StatusLabel translates the status, unknown values pass through.
func (t Transaction) StatusLabel() string {
	return StatusLabel(t.Status)
}

// PaymentLabel translates the payment method, unknown values pass through.
func (t Transaction) PaymentLabel() string {
	return PaymentLabel(t.PaymentMethod)
}

// DeliveryLabel turns a snake_case delivery status into Title Case.
func (t Transaction) DeliveryLabel() string {
	return DeliveryLabel(t.DeliveryStatus)
}

// Time is the creation time, zero when absent.
func (t Transaction) Time() time.Time {
	if t.CreatedAt == nil {
		return time.Time{}
	}
	return t.CreatedAt.Time
}

// ItemCount sums the quantities of every line item.
func (t Transaction) ItemCount() float64 {
	var n float64
	for _, d := range t.Details {
		n += d.Qty.Float()
	}
	return n
}

// ProductName is the line item's product name or "-".
func (d Detail) ProductName() string {
	if d.Product == nil {
		return "-"
	}
	return internalShared.OrDash(d.Product.Name)
}

// StatusLabel translates a transaction status.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// PaymentLabel translates a payment method.
func PaymentLabel(method string) string {
	if label, ok := paymentLabels[method]; ok {
		return label
	}
	return method
}

// DeliveryLabel formats a delivery status such as "in_transit".
func DeliveryLabel(status string) string {
	return internalShared.OrDash(internalShared.TitleWords(status))
}

// Summary is the headline block of the report.
type Summary struct {
	TotalTransactions  int                    `json:"total_transactions"`
	TotalRevenue       internalShared.Decimal `json:"total_revenue"`
	AverageTransaction internalShared.Decimal `json:"average_transaction"`
	CompletedCount     int                    `json:"completed_count"`
	CancelledCount     int                    `json:"cancelled_count"`
	PendingCount       int                    `json:"pending_count"`
	PaidCount          int                    `json:"paid_count"`
}

// DailySale is one point of the daily series.
type DailySale struct {
	Date             string                 `json:"date"`
	TransactionCount internalShared.Decimal `json:"transaction_count"`
	TotalSales       internalShared.Decimal `json:"total_sales"`
	AverageSales     internalShared.Decimal `json:"average_sales"`
}

// Label renders the date as dd/MM, or the raw value when it does not parse.
func (d DailySale) Label() string {
	parsed, err := internalShared.ParseTimestamp(d.Date)
	if err != nil || parsed.IsZero() {
		return d.Date
	}
	return parsed.Format("02/01")
}

// StatusOption is one choice of the status or type select.
type StatusOption struct {
	Value string
	Label string
}

// StatusOptions are the selectable transaction statuses.
var StatusOptions = []StatusOption{
	{Value: "all", Label: "Semua Status"},
	{Value: StatusPending, Label: "Pending"},
	{Value: StatusPaid, Label: "Dibayar"},
	{Value: StatusCompleted, Label: "Selesai"},
	{Value: StatusCancelled, Label: "Dibatalkan"},
}

// TypeOptions are the selectable transaction types.
var TypeOptions = []StatusOption{
	{Value: "all", Label: "Semua Jenis"},
	{Value: TypeOnline, Label: "Online"},
	{Value: TypeOffline, Label: "Offline"},
}

func transactionID(t Transaction) int64 { return t.ID }

func searchFields(t Transaction) []string {
	return []string{strconv.FormatInt(t.ID, 10), shared.PersonName(t.Customer), t.PaymentMethod, t.Status}
}
