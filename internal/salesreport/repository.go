package salesreport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

// Repository talks to the report endpoints.
type Repository interface {
	Branches(ctx context.Context) ([]branches.Branch, error)
	Transactions(ctx context.Context, query url.Values) (TransactionPage, error)
	DailySales(ctx context.Context, query url.Values) ([]DailySale, error)
}

type apiRepository struct {
	api      *apiclient.Client
	branches branches.Repository
}

// NewRepository binds the repository to one credential.
func NewRepository(api *apiclient.Client) Repository {
	return &apiRepository{api: api, branches: branches.NewRepository(api)}
}

func (r *apiRepository) Branches(ctx context.Context) ([]branches.Branch, error) {
	return r.branches.List(ctx)
}

func (r *apiRepository) Transactions(ctx context.Context, query url.Values) (TransactionPage, error) {
	var out TransactionPage
	if err := r.api.Get(ctx, "/laporan/branch-transactions", query, &out); err != nil {
		return TransactionPage{}, fmt.Errorf("branch transactions: %w", err)
	}
	return out, nil
}

func (r *apiRepository) DailySales(ctx context.Context, query url.Values) ([]DailySale, error) {
	var out apiclient.List[DailySale]
	if err := r.api.Get(ctx, "/laporan/daily-sales", query, &out); err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	return out, nil
}

// TransactionPage is one server page of transactions. Page is 0 when the
// server did not echo it. Summary is nil when the server sent none.
type TransactionPage struct {
	Items    []Transaction
	Page     int
	LastPage int
	Total    int
	Summary  *Summary
}

type transactionEnvelope struct {
	Transactions *struct {
		Data        []Transaction `json:"data"`
		CurrentPage int           `json:"current_page"`
		LastPage    int           `json:"last_page"`
		Total       int           `json:"total"`
	} `json:"transactions"`
	Data    []Transaction `json:"data"`
	Summary *Summary      `json:"summary"`
}

// UnmarshalJSON accepts the paginated envelope
// {"transactions": {"data", "last_page", "total"}, "summary"} as well as a
// bare array, which is treated as a single page.
func (p *TransactionPage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Transaction
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = TransactionPage{Items: items, Page: 1, LastPage: 1, Total: len(items)}
		return nil
	}
	var env transactionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	out := TransactionPage{Summary: env.Summary, LastPage: 1}
	switch {
	case env.Transactions != nil:
		out.Items = env.Transactions.Data
		out.Total = env.Transactions.Total
		out.Page = env.Transactions.CurrentPage
		if env.Transactions.LastPage > 0 {
			out.LastPage = env.Transactions.LastPage
		}
	case env.Data != nil:
		out.Items = env.Data
		out.Page = 1
		out.Total = len(env.Data)
	default:
		return fmt.Errorf("transactions: no list in response")
	}
	if out.Items == nil {
		out.Items = []Transaction{}
	}
	*p = out
	return nil
}

// Validate implements apiclient.Validator.
func (p TransactionPage) Validate() error {
	for i, t := range p.Items {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}
