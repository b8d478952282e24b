package stockrequests

import (
	"context"
	"fmt"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

// Repository talks to the stock request endpoints.
type Repository interface {
	List(ctx context.Context) ([]StockRequest, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64, reason string) error
}

type apiRepository struct {
	api *apiclient.Client
}

// NewRepository binds the repository to one credential.
func NewRepository(api *apiclient.Client) Repository {
	return &apiRepository{api: api}
}

func (r *apiRepository) List(ctx context.Context) ([]StockRequest, error) {
	var out apiclient.List[StockRequest]
	if err := r.api.Get(ctx, "/stock-requests", nil, &out); err != nil {
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	return out, nil
}

func (r *apiRepository) Approve(ctx context.Context, id int64) error {
	return r.api.Put(ctx, fmt.Sprintf("/stock-requests/%d/approve", id), nil, nil)
}

func (r *apiRepository) Reject(ctx context.Context, id int64, reason string) error {
	return r.api.Put(ctx, fmt.Sprintf("/stock-requests/%d/reject", id), RejectForm{Reason: reason}, nil)
}
