package categories

import (
	"context"
	"fmt"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, form Form) error
	Update(ctx context.Context, id int64, form Form) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	api *apiclient.Client
}

func NewRepository(api *apiclient.Client) Repository {
	return &repository{api: api}
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	var out apiclient.List[Category]
	if err := r.api.Get(ctx, "/kategori-produk", nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, form Form) error {
	return r.api.Post(ctx, "/kategori-produk", form, nil)
}

func (r *repository) Update(ctx context.Context, id int64, form Form) error {
	return r.api.Put(ctx, fmt.Sprintf("/kategori-produk/%d", id), form, nil)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/kategori-produk/%d", id), nil)
}
