package shared

import "errors"

var (
	ErrInvalidID = errors.New("invalid ID")
	ErrMissingID = errors.New("record without id")
)
