// Package dashboard renders the landing page with headline counts.
package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dailymart/admin-dashboard/internal/listing"
)

// Card is one headline count. Err is set when its fetch failed; the other
// cards still render.
type Card struct {
	Key   string
	Title string
	Value int
	Link  string
	Err   string
}

// Failed reports whether the card has no value to show.
func (c Card) Failed() bool { return c.Err != "" }

// Counter fetches one headline count.
type Counter struct {
	Key        string
	Title      string
	Link       string
	LoadFailed string
	Count      func(ctx context.Context) (int, error)
}

// Service fetches all cards in parallel.
type Service struct {
	counters []Counter
	logger   *slog.Logger
}

// NewService builds a service over counters, shown in the given order.
func NewService(logger *slog.Logger, counters ...Counter) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{counters: counters, logger: logger}
}

// Cards runs every counter concurrently. A failing counter only marks its
// own card; the returned error is the first failure, for credential
// bookkeeping.
func (s *Service) Cards(ctx context.Context) ([]Card, error) {
	cards := make([]Card, len(s.counters))
	errs := make([]error, len(s.counters))
	var g errgroup.Group
	for i, c := range s.counters {
		cards[i] = Card{Key: c.Key, Title: c.Title, Link: c.Link}
		g.Go(func() error {
			n, err := c.Count(ctx)
			if err != nil {
				errs[i] = err
				cards[i].Err = listing.FailureMessage(err, c.LoadFailed)
				s.logger.Warn("dashboard card failed", slog.String("card", c.Key), slog.Any("error", err))
				return nil
			}
			cards[i].Value = n
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return cards, err
		}
	}
	return cards, nil
}

// CountOf adapts a list fetch to a Counter.Count.
func CountOf[T any](list func(ctx context.Context) ([]T, error)) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		return len(items), err
	}
}

// CountWhere counts the fetched items that pass pred.
func CountWhere[T any](list func(ctx context.Context) ([]T, error), pred func(T) bool) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		if err != nil {
			return 0, err
		}
		return listing.Count(items, pred), nil
	}
}
