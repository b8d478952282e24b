package branches

import (
	"context"
	"fmt"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

type Repository interface {
	List(ctx context.Context) ([]Branch, error)
	Create(ctx context.Context, form BranchForm) error
	Update(ctx context.Context, id int64, form BranchForm) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	api *apiclient.Client
}

// NewRepository returns the API-backed Repository for one credential.
func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) List(ctx context.Context) ([]Branch, error) {
	var out apiclient.List[Branch]
	if err := r.api.Get(ctx, "/branches", nil, &out); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, form BranchForm) error {
	return r.api.Post(ctx, "/branches", form, nil)
}

func (r *repository) Update(ctx context.Context, id int64, form BranchForm) error {
	return r.api.Put(ctx, fmt.Sprintf("/branches/%d", id), form, nil)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/branches/%d", id), nil)
}
