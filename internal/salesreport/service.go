package salesreport

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dailymart/admin-dashboard/internal/chart"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// Report is one loaded page of the report with everything the page and the
// exports show.
type Report struct {
	Branch          shared.BranchRef `json:"branch"`
	Params          Params           `json:"params"`
	Transactions    []Transaction    `json:"transactions"`
	Page            int              `json:"page"`
	LastPage        int              `json:"last_page"`
	Total           int              `json:"total"`
	Summary         Summary          `json:"summary"`
	SummaryComputed bool             `json:"summary_computed"`
	Daily           []DailySale      `json:"daily,omitempty"`
}

// Empty reports whether there is nothing to export.
func (r Report) Empty() bool {
	return len(r.Transactions) == 0
}

// Trend converts the daily series into chart points.
func (r Report) Trend() []chart.Point {
	out := make([]chart.Point, 0, len(r.Daily))
	for _, d := range r.Daily {
		out = append(out, chart.Point{Label: d.Label(), Sales: d.TotalSales.Float(), Count: d.TransactionCount.Float()})
	}
	return out
}

// ListPage adapts the server pagination to the shared pager. items is the
// possibly searched subset of the loaded page.
func (r Report) ListPage(items []Transaction) listing.Page[Transaction] {
	perPage := r.Params.PerPage
	if perPage <= 0 {
		perPage = PerPage
	}
	page := r.Page
	if page < 1 {
		page = 1
	}
	totalPages := r.LastPage
	if totalPages < 1 {
		totalPages = 1
	}
	return listing.Page[Transaction]{Items: items, Page: page, PerPage: perPage, Total: r.Total, TotalPages: totalPages}
}

// Service loads reports through a Repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Branches lists the selectable branches.
func (s *Service) Branches(ctx context.Context) ([]branches.Branch, error) {
	return s.repo.Branches(ctx)
}

// Load fetches the transaction page and, when both dates are set, the daily
// series in parallel. A failed daily series only drops the chart. The
// server summary is used as is; without one the loaded page is summarised.
func (s *Service) Load(ctx context.Context, params Params, branch shared.BranchRef) (Report, error) {
	var (
		page  TransactionPage
		daily []DailySale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.repo.Transactions(gctx, params.Query())
		return err
	})
	if params.HasRange() {
		g.Go(func() error {
			series, err := s.repo.DailySales(gctx, params.DailyQuery())
			if err != nil {
				s.logger.Warn("daily sales unavailable", slog.Any("error", err), slog.Int64("branch_id", params.BranchID))
				return nil
			}
			daily = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	if branch.ID == 0 {
		branch.ID = params.BranchID
	}
	if branch.Name == "" {
		for _, t := range page.Items {
			if name := shared.BranchName(t.Branch); name != "" {
				branch.Name = name
				break
			}
		}
	}
	report := Report{
		Branch:       branch,
		Params:       params,
		Transactions: page.Items,
		Page:         page.Page,
		LastPage:     page.LastPage,
		Total:        page.Total,
		Daily:        daily,
	}
	if report.Page < 1 {
		report.Page = params.Page
	}
	if report.Page < 1 {
		report.Page = 1
	}
	if page.Summary != nil {
		report.Summary = *page.Summary
	} else {
		report.Summary = Summarize(page.Items)
		report.SummaryComputed = true
	}
	return report, nil
}

// Summarize computes the summary block from a list of transactions.
func Summarize(items []Transaction) Summary {
	var s Summary
	var revenue float64
	for _, t := range items {
		revenue += t.Total.Float()
		switch t.Status {
		case StatusCompleted:
			s.CompletedCount++
		case StatusCancelled:
			s.CancelledCount++
		case StatusPending:
			s.PendingCount++
		case StatusPaid:
			s.PaidCount++
		}
	}
	s.TotalTransactions = len(items)
	s.TotalRevenue = internalShared.Decimal(revenue)
	if len(items) > 0 {
		s.AverageTransaction = internalShared.Decimal(revenue / float64(len(items)))
	}
	return s
}

// Search narrows the loaded page by id, customer name, payment method and
// status.
func Search(items []Transaction, q string) []Transaction {
	return listing.Filter(items, q, searchFields)
}
