package branches

import (
	"context"

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

func (s *Service) List(ctx context.Context) ([]Branch, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, form BranchForm) error {
	form = form.normalize()
	if err := s.validate(form); err != nil {
		return err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form BranchForm) error {
	if id <= 0 {
		return shared.ErrInvalidID
	}
	form = form.normalize()
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

// Controller drives the branch modals.
func (s *Service) Controller() crud.Controller[Branch, BranchForm] {
	return crud.Controller[Branch, BranchForm]{
		Seed:     seedForm,
		Validate: func(f BranchForm, _ crud.Mode) error { return s.validate(f.normalize()) },
		Create:   s.Create,
		Update: func(ctx context.Context, b Branch, f BranchForm) error {
			return s.Update(ctx, b.ID, f)
		},
		Actions: map[string]crud.Action[Branch, BranchForm]{
			crud.ActionDelete: {
				Run:      func(ctx context.Context, b Branch, _ BranchForm) error { return s.Delete(ctx, b.ID) },
				Fallback: "Gagal menghapus cabang",
			},
		},
		SaveFallback: "Gagal menyimpan cabang",
	}
}
