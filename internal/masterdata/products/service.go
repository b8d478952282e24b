package products

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/categories"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// countConcurrency bounds the per-branch product fetches of the picker.
const countConcurrency = 4

type Service struct {
	repo      Repository
	validator *internalShared.Validator
}

func NewService(repo Repository, validator *internalShared.Validator) *Service {
	if validator == nil {
		validator = internalShared.NewValidator()
	}
	return &Service{repo: repo, validator: validator}
}

// BranchesWithCounts lists branches with their product totals. A branch whose
// products cannot be fetched counts 0; only the branch list itself can fail.
func (s *Service) BranchesWithCounts(ctx context.Context) ([]BranchCount, error) {
	list, err := s.repo.Branches(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BranchCount, len(list))
	var g errgroup.Group
	g.SetLimit(countConcurrency)
	for i, b := range list {
		out[i].Branch = b
		g.Go(func() error {
			items, err := s.repo.ListByBranch(ctx, b.ID)
			if err == nil {
				out[i].Products = len(items)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// Catalog is everything the product screen of one branch shows.
type Catalog struct {
	Branch     branches.Branch
	Products   []Product
	Categories []categories.Category
}

// Catalog loads the branch's products and the category options together.
// Categories are optional: their failure leaves the dropdown empty. The
// branch name comes from the first product, falling back to the branch list.
func (s *Service) Catalog(ctx context.Context, branchID int64) (Catalog, error) {
	cat := Catalog{Branch: branches.Branch{ID: branchID}}
	if branchID <= 0 {
		return cat, shared.ErrInvalidID
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.ListByBranch(gctx, branchID)
		cat.Products = items
		return err
	})
	g.Go(func() error {
		if items, err := s.repo.Categories(gctx); err == nil {
			cat.Categories = items
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return cat, err
	}

	if len(cat.Products) > 0 && cat.Products[0].Branch != nil {
		cat.Branch.Name = cat.Products[0].Branch.Name
	} else if list, err := s.repo.Branches(ctx); err == nil {
		for _, b := range list {
			if b.ID == branchID {
				cat.Branch = b
				break
			}
		}
	}
	return cat, nil
}

func (s *Service) Create(ctx context.Context, branchID int64, form Form) error {
	form = form.normalize()
	if err := s.validate(form); err != nil {
		return err
	}
	return s.repo.Create(ctx, branchID, form)
}

func (s *Service) Update(ctx context.Context, id, branchID int64, form Form) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	form = form.normalize()
	if err := s.validate(form); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, branchID, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// Controller drives the product modals of one branch.
func (s *Service) Controller(branchID int64) crud.Controller[Product, Form] {
	return crud.Controller[Product, Form]{
		Seed:     seedForm,
		Validate: func(f Form, _ crud.Mode) error { return s.validate(f.normalize()) },
		Create: func(ctx context.Context, f Form) error {
			return s.Create(ctx, branchID, f)
		},
		Update: func(ctx context.Context, p Product, f Form) error {
			return s.Update(ctx, p.ID, branchID, f)
		},
		Actions: map[string]crud.Action[Product, Form]{
			crud.ActionDelete: {
				Run:      func(ctx context.Context, p Product, _ Form) error { return s.Delete(ctx, p.ID) },
				Fallback: "Gagal menghapus produk",
			},
		},
		SaveFallback: "Gagal menyimpan produk",
	}
}
