package categories

import (
	"context"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

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

// List returns the categories in API order.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, form Form) error {
	form.Name = strings.TrimSpace(form.Name)
	if err := s.validate(form); err != nil {
		return err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form Form) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	form.Name = strings.TrimSpace(form.Name)
	if err := s.validate(form); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Controller() crud.Controller[Category, Form] {
	return crud.Controller[Category, Form]{
		Seed: func(c Category) Form { return Form{Name: c.Name} },
		Validate: func(f Form, _ crud.Mode) error {
			f.Name = strings.TrimSpace(f.Name)
			return s.validate(f)
		},
		Create: s.Create,
		Update: func(ctx context.Context, c Category, f Form) error { return s.Update(ctx, c.ID, f) },
		Actions: map[string]crud.Action[Category, Form]{
			crud.ActionDelete: {
				Run:      func(ctx context.Context, c Category, _ Form) error { return s.Delete(ctx, c.ID) },
				Fallback: "Gagal menghapus kategori",
			},
		},
		SaveFallback: "Gagal menyimpan kategori",
	}
}
