// Package crud models the modal workflow shared by the management screens:
// a page is closed, creating, viewing, editing, or confirming an action on
// one record, and exactly one of those at a time.
package crud

// Mode tags the page view state.
type Mode string

const (
	ModeClosed  Mode = ""
	ModeCreate  Mode = "create"
	ModeEdit    Mode = "edit"
	ModeDetail  Mode = "detail"
	ModeConfirm Mode = "confirm"
)

// Confirmable actions.
const (
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// State is the view state of one page. Entity is set for edit, detail and
// confirm; Form holds the bound field values; Action names the pending
// confirmation.
type State[T any, F any] struct {
	Mode   Mode
	Entity *T
	Form   F
	Action string
	Error  string
	Fields map[string]string
}

// Open reports whether a modal is showing.
func (s State[T, F]) Open() bool { return s.Mode != ModeClosed }

// IsCreate reports whether the create form is showing.
func (s State[T, F]) IsCreate() bool { return s.Mode == ModeCreate }

// IsEdit reports whether the edit form is showing.
func (s State[T, F]) IsEdit() bool { return s.Mode == ModeEdit }

// IsForm reports whether the create or edit form is showing.
func (s State[T, F]) IsForm() bool { return s.Mode == ModeCreate || s.Mode == ModeEdit }

// IsDetail reports whether the read-only detail view is showing.
func (s State[T, F]) IsDetail() bool { return s.Mode == ModeDetail }

// IsConfirm reports whether the confirmation for action is showing.
func (s State[T, F]) IsConfirm(action string) bool {
	return s.Mode == ModeConfirm && s.Action == action
}

// FieldError returns the validation message for one form field.
func (s State[T, F]) FieldError(field string) string {
	return s.Fields[field]
}
