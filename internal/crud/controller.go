package crud

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrNotLoaded is returned when a modal names a record missing from the list.
var ErrNotLoaded = errors.New("crud: record not in loaded list")

// MsgNotFound is shown when a modal names a record missing from the list.
const MsgNotFound = "Data tidak ditemukan"

// Action is a confirmable operation on one record.
type Action[T any, F any] struct {
	Validate func(F) error
	Run      func(ctx context.Context, entity T, form F) error
	Fallback string
}

// Controller drives State transitions for one entity type. Empty builds the
// blank form, Seed copies an entity into a form. Validate runs before any
// request; Create and Update talk to the API.
type Controller[T any, F any] struct {
	Empty    func() F
	Seed     func(T) F
	Validate func(F, Mode) error
	Create   func(ctx context.Context, form F) error
	Update   func(ctx context.Context, entity T, form F) error
	Actions  map[string]Action[T, F]

	// SaveFallback is shown when a save fails without a server message.
	SaveFallback string
}

// Closed is the state with no modal.
func (c Controller[T, F]) Closed() State[T, F] {
	return State[T, F]{Mode: ModeClosed, Form: c.empty()}
}

// OpenCreate shows a blank form.
func (c Controller[T, F]) OpenCreate() State[T, F] {
	return State[T, F]{Mode: ModeCreate, Form: c.empty()}
}

// OpenEdit shows the form seeded from entity.
func (c Controller[T, F]) OpenEdit(entity T) State[T, F] {
	return State[T, F]{Mode: ModeEdit, Entity: &entity, Form: c.seed(entity)}
}

// OpenDetail shows entity read-only.
func (c Controller[T, F]) OpenDetail(entity T) State[T, F] {
	return State[T, F]{Mode: ModeDetail, Entity: &entity, Form: c.seed(entity)}
}

// Confirm asks for explicit confirmation of action on entity.
func (c Controller[T, F]) Confirm(entity T, action string) State[T, F] {
	return State[T, F]{Mode: ModeConfirm, Entity: &entity, Form: c.empty(), Action: action}
}

// Cancel closes whatever is open and drops its fields.
func (c Controller[T, F]) Cancel() State[T, F] {
	return c.Closed()
}

// Submit validates and saves form. On success it returns the closed state
// and true; the caller refetches. On failure the returned state keeps the
// submitted fields and carries the message to show.
func (c Controller[T, F]) Submit(ctx context.Context, current State[T, F], form F) (State[T, F], bool, error) {
	next := current
	next.Form = form
	next.Error = ""
	next.Fields = nil

	if !current.IsForm() {
		return next, false, errors.New("crud: submit without an open form")
	}
	if c.Validate != nil {
		if err := c.Validate(form, current.Mode); err != nil {
			next.Error, next.Fields = validationMessage(err)
			return next, false, err
		}
	}

	var err error
	switch current.Mode {
	case ModeCreate:
		if c.Create == nil {
			return next, false, errors.New("crud: create not supported")
		}
		err = c.Create(ctx, form)
	case ModeEdit:
		if c.Update == nil || current.Entity == nil {
			return next, false, errors.New("crud: update not supported")
		}
		err = c.Update(ctx, *current.Entity, form)
	}
	if err != nil {
		next.Error = apiclient.MessageOf(err, c.saveFallback())
		return next, false, err
	}
	return c.Closed(), true, nil
}

// Execute runs the confirmed action. Failure keeps the confirmation open
// with the message to show.
func (c Controller[T, F]) Execute(ctx context.Context, current State[T, F], form F) (State[T, F], bool, error) {
	next := current
	next.Form = form
	next.Error = ""
	next.Fields = nil

	if current.Mode != ModeConfirm || current.Entity == nil {
		return next, false, errors.New("crud: execute without confirmation")
	}
	action, ok := c.Actions[current.Action]
	if !ok || action.Run == nil {
		return next, false, errors.New("crud: unknown action " + current.Action)
	}
	if action.Validate != nil {
		if err := action.Validate(form); err != nil {
			next.Error, next.Fields = validationMessage(err)
			return next, false, err
		}
	}
	if err := action.Run(ctx, *current.Entity, form); err != nil {
		fallback := action.Fallback
		if fallback == "" {
			fallback = "Gagal memproses data"
		}
		next.Error = apiclient.MessageOf(err, fallback)
		return next, false, err
	}
	return c.Closed(), true, nil
}

// FromQuery rebuilds the state named by ?modal=...&id=... . find looks the
// id up in the records already loaded for the page. Unknown modals close;
// an id that is not loaded closes with MsgNotFound.
func (c Controller[T, F]) FromQuery(values url.Values, find func(id string) (T, bool)) (State[T, F], error) {
	mode := strings.TrimSpace(values.Get("modal"))
	if mode == "" {
		return c.Closed(), nil
	}
	if mode == string(ModeCreate) {
		if c.Create == nil {
			return c.Closed(), nil
		}
		return c.OpenCreate(), nil
	}

	id := strings.TrimSpace(values.Get("id"))
	entity, ok := find(id)
	if id == "" || !ok {
		closed := c.Closed()
		closed.Error = MsgNotFound
		return closed, ErrNotLoaded
	}
	switch mode {
	case string(ModeEdit):
		if c.Update == nil {
			return c.OpenDetail(entity), nil
		}
		return c.OpenEdit(entity), nil
	case string(ModeDetail):
		return c.OpenDetail(entity), nil
	default:
		if _, ok := c.Actions[mode]; ok {
			return c.Confirm(entity, mode), nil
		}
	}
	return c.Closed(), nil
}

func (c Controller[T, F]) empty() F {
	if c.Empty != nil {
		return c.Empty()
	}
	var zero F
	return zero
}

func (c Controller[T, F]) seed(entity T) F {
	if c.Seed != nil {
		return c.Seed(entity)
	}
	return c.empty()
}

func (c Controller[T, F]) saveFallback() string {
	if c.SaveFallback != "" {
		return c.SaveFallback
	}
	return "Gagal menyimpan data"
}

func validationMessage(err error) (string, map[string]string) {
	var verrs shared.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error(), verrs.Fields()
	}
	return shared.UserSafeMessage(err), nil
}
