package listing

import (
	"context"
	"errors"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

// Page-level messages for the fetch failure taxonomy.
const (
	MsgNoCredential = "Silakan login terlebih dahulu."
	MsgUnauthorized = "Unauthorized: silakan login terlebih dahulu"
)

// Collection is the records of one screen plus the message to show when the
// fetch failed. Records are replaced wholesale by every Load.
type Collection[T any] struct {
	Items        []T
	Error        string
	Unauthorized bool
}

// Failed reports whether the last load produced an error message.
func (c Collection[T]) Failed() bool {
	return c.Error != ""
}

// Load runs fetch and maps failures onto page messages: a missing credential
// and HTTP 401 get their own sentences, anything else gets failMessage. Items
// are empty whenever an error is set. The raw error is returned for logging.
func Load[T any](ctx context.Context, fetch func(context.Context) ([]T, error), failMessage string) (Collection[T], error) {
	items, err := fetch(ctx)
	if err != nil {
		return Failure[T](err, failMessage), err
	}
	if items == nil {
		items = []T{}
	}
	return Collection[T]{Items: items}, nil
}

// Failure builds the empty collection for err.
func Failure[T any](err error, failMessage string) Collection[T] {
	return Collection[T]{Items: []T{}, Error: FailureMessage(err, failMessage), Unauthorized: apiclient.IsUnauthorized(err)}
}

// FailureMessage picks the page message for a fetch error.
func FailureMessage(err error, failMessage string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apiclient.ErrNoCredential):
		return MsgNoCredential
	case apiclient.IsUnauthorized(err):
		return MsgUnauthorized
	default:
		return failMessage
	}
}
