package salesreport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/chart"
	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
)

// Path is where the report is mounted.
const Path = "/admin/laporan-penjualan-cabang"

const (
	pageTemplate  = "pages/sales_report.html"
	printTemplate = "pages/sales_report_print.html"
	pageTitle     = "Laporan Transaksi Per Cabang"

	msgNothingToExport = "Tidak ada data untuk diekspor"
)

// Handler serves the report page, its exports and the print view.
type Handler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
	snapshots   *SnapshotStore
	now         func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder, snapshots *SnapshotStore) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, credentials: credentials, responder: responder, snapshots: snapshots, now: time.Now}
}

// MountRoutes registers the report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Get("/export.xlsx", h.ExportXLSX)
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/print", h.Print)
}

type reportPage struct {
	State         listing.State
	Params        Params
	Branches      []branches.Branch
	Report        *Report
	Page          listing.Page[Transaction]
	Error         string
	Stale         bool
	LoadedAt      time.Time
	Chart         template.HTML
	StatusOptions []StatusOption
	TypeOptions   []StatusOption
	Modal         crud.State[Transaction, struct{}]
}

// detailController only opens the transaction detail.
var detailController = crud.Controller[Transaction, struct{}]{}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := listing.ParseState(r.URL.Query(), FilterKeys...)
	params := ParamsFrom(state)
	svc := NewService(NewRepository(h.credentials.Client(r)), h.logger)
	data := reportPage{
		State:         state,
		Params:        params,
		StatusOptions: StatusOptions,
		TypeOptions:   TypeOptions,
	}

	branchList, err := listing.Load(ctx, svc.Branches, "Gagal mengambil data cabang")
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("list branches for report failed", slog.Any("error", err))
		data.Error = branchList.Error
	}
	data.Branches = branchList.Items

	if params.Ready() && !authFailed(err) {
		h.load(ctx, r, svc, &data, branchRef(branchList.Items, params.BranchID))
	}

	if data.Report != nil {
		data.Page = data.Report.ListPage(Search(data.Report.Transactions, state.Search))
		data.Chart = h.trend(*data.Report)
		data.Modal, _ = detailController.FromQuery(r.URL.Query(), crud.FindByID(data.Report.Transactions, transactionID))
	}
	h.responder.Render(w, r, pageTemplate, pageTitle, data, http.StatusOK)
}

// load fetches the report under a fresh generation. On failure the last
// committed snapshot is shown instead, marked stale.
func (h *Handler) load(ctx context.Context, r *http.Request, svc *Service, data *reportPage, branch shared.BranchRef) {
	owner := sessionOwner(r)
	var gen int64
	if owner != "" {
		var err error
		if gen, err = h.snapshots.Begin(ctx, owner); err != nil {
			h.logger.Warn("report snapshot unavailable", slog.Any("error", err))
			owner = ""
		}
	}

	report, err := svc.Load(ctx, data.Params, branch)
	if err == nil {
		now := h.now()
		data.Report = &report
		data.LoadedAt = now
		if owner != "" {
			switch cerr := h.snapshots.Commit(ctx, owner, gen, report, now); {
			case errors.Is(cerr, ErrStaleGeneration):
				h.logger.Debug("report superseded", slog.Int64("generation", gen))
			case cerr != nil:
				h.logger.Warn("report snapshot not stored", slog.Any("error", cerr))
			}
		}
		return
	}

	h.credentials.Observe(r, err)
	h.logger.Error("load sales report failed", slog.Any("error", err), slog.Int64("branch_id", data.Params.BranchID))
	data.Error = listing.FailureMessage(err, apiclient.MessageOf(err, "Gagal mengambil data laporan"))
	if owner == "" || authFailed(err) {
		return
	}
	snap, ok, lerr := h.snapshots.Load(ctx, owner)
	if lerr != nil {
		h.logger.Warn("report snapshot unreadable", slog.Any("error", lerr))
		return
	}
	if ok {
		data.Report = &snap.Report
		data.LoadedAt = snap.LoadedAt
		data.Stale = true
	}
}

func (h *Handler) trend(report Report) template.HTML {
	if len(report.Daily) == 0 {
		return ""
	}
	svg, err := chart.DailyTrend(0, 0, report.Trend(), chart.Options{
		Title:      "Trend Penjualan Harian",
		SalesLabel: "Total Penjualan (Rp)",
		CountLabel: "Jumlah Transaksi",
		ShowDots:   true,
	})
	if err != nil {
		h.logger.Warn("render daily trend", slog.Any("error", err))
		return ""
	}
	return svg
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	now := h.now()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, snap.Report, now); err != nil {
		h.logger.Error("xlsx export failed", slog.Any("error", err))
		h.responder.RedirectWithFlash(w, r, reportURL(snap.Report), "error", "Gagal mengekspor data")
		return
	}
	h.download(w, ContentTypeXLSX, FileName(snap.Report.Branch.Name, "xlsx", now), buf.Bytes())
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, snap.Report); err != nil {
		h.logger.Error("csv export failed", slog.Any("error", err))
		h.responder.RedirectWithFlash(w, r, reportURL(snap.Report), "error", "Gagal mengekspor ke CSV")
		return
	}
	h.download(w, ContentTypeCSV, FileName(snap.Report.Branch.Name, "csv", h.now()), buf.Bytes())
}

type printPage struct {
	Report    Report
	Rows      []Row
	LoadedAt  time.Time
	PrintedAt time.Time
	Period    string
}

func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	h.responder.Render(w, r, printTemplate, pageTitle, printPage{
		Report:    snap.Report,
		Rows:      Flatten(snap.Report.Transactions),
		LoadedAt:  snap.LoadedAt,
		PrintedAt: h.now(),
		Period:    snap.Report.Params.Period(),
	}, http.StatusOK)
}

// snapshot returns the session's loaded report for an export. Without one
// the browser goes back to the report with a flash.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (Snapshot, bool) {
	back := listing.ParseState(r.URL.Query(), FilterKeys...).URL(Path)
	owner := sessionOwner(r)
	if owner == "" {
		h.responder.RedirectWithFlash(w, r, back, "error", msgNothingToExport)
		return Snapshot{}, false
	}
	snap, ok, err := h.snapshots.Load(r.Context(), owner)
	if err != nil {
		h.logger.Error("load report snapshot", slog.Any("error", err))
	}
	if !ok || snap.Report.Empty() {
		h.responder.RedirectWithFlash(w, r, back, "error", msgNothingToExport)
		return Snapshot{}, false
	}
	return snap, true
}

func (h *Handler) download(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("write export", slog.Any("error", err))
	}
}

func reportURL(report Report) string {
	return report.Params.State().URL(Path)
}

func authFailed(err error) bool {
	return errors.Is(err, apiclient.ErrNoCredential) || apiclient.IsUnauthorized(err)
}

func branchRef(list []branches.Branch, id int64) shared.BranchRef {
	for _, b := range list {
		if b.ID == id {
			return shared.BranchRef{ID: b.ID, Name: b.Name, Address: b.Address, Phone: b.Phone}
		}
	}
	return shared.BranchRef{ID: id}
}

func sessionOwner(r *http.Request) string {
	if sess := internalShared.SessionFromContext(r.Context()); sess != nil {
		return sess.ID
	}
	return ""
}
