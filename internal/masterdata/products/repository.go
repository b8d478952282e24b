package products

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/categories"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

type Repository interface {
	ListByBranch(ctx context.Context, branchID int64) ([]Product, error)
	Branches(ctx context.Context) ([]branches.Branch, error)
	Categories(ctx context.Context) ([]categories.Category, error)
	Create(ctx context.Context, branchID int64, form Form) error
	Update(ctx context.Context, id, branchID int64, form Form) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	api        *apiclient.Client
	branches   branches.Repository
	categories categories.Repository
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{
		api:        api,
		branches:   branches.NewRepository(api),
		categories: categories.NewRepository(api),
	}
}

func (r *repository) ListByBranch(ctx context.Context, branchID int64) ([]Product, error) {
	var out apiclient.List[Product]
	if err := r.api.Get(ctx, fmt.Sprintf("/products/branch/%d", branchID), nil, &out); err != nil {
		return nil, fmt.Errorf("list products of branch %d: %w", branchID, err)
	}
	return out, nil
}

func (r *repository) Branches(ctx context.Context) ([]branches.Branch, error) {
	return r.branches.List(ctx)
}

func (r *repository) Categories(ctx context.Context) ([]categories.Category, error) {
	return r.categories.List(ctx)
}

func (r *repository) Create(ctx context.Context, branchID int64, form Form) error {
	return r.api.PostMultipart(ctx, "/products", nil, form.fields(branchID), form.Image, nil)
}

// Update tunnels PUT through POST so the image can travel as multipart.
func (r *repository) Update(ctx context.Context, id, branchID int64, form Form) error {
	query := url.Values{"_method": {"PUT"}}
	return r.api.PostMultipart(ctx, fmt.Sprintf("/products/%d", id), query, form.fields(branchID), form.Image, nil)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/products/%d", id), nil)
}
