package products

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/masterdata/categories"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
)

const (
	pickerPath = "/admin/produk"
	// CategoryKey is the query key of the category filter.
	CategoryKey    = "kategori"
	maxUploadBytes = 5 << 20
)

type Handler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
	validator   *internalShared.Validator
}

func NewHandler(logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, credentials: credentials, responder: responder, validator: internalShared.NewValidator()}
}

// MountRoutes registers the branch picker and the per-branch product screen.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Picker)
	r.Get("/{branchID}", h.List)
	r.Post("/{branchID}", h.Create)
	r.Post("/{branchID}/{id}", h.Update)
	r.Post("/{branchID}/{id}/delete", h.Delete)
}

type pickerPage struct {
	Branches []BranchCount
	Error    string
}

type listPage struct {
	Path       string
	Catalog    Catalog
	State      listing.State
	Page       listing.Page[Product]
	Categories []categories.Category
	Error      string
	Modal      crud.State[Product, Form]
}

func (h *Handler) service(r *http.Request) *Service {
	return NewService(NewRepository(h.credentials.Client(r)), h.validator)
}

func (h *Handler) Picker(w http.ResponseWriter, r *http.Request) {
	list, err := h.service(r).BranchesWithCounts(r.Context())
	data := pickerPage{Branches: list}
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("list branches for product picker failed", slog.Any("error", err))
		data.Error = listing.FailureMessage(err, "Gagal memuat data cabang")
		data.Branches = []BranchCount{}
	}
	h.responder.Render(w, r, "pages/product_branches.html", "Pilih Cabang", data, http.StatusOK)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	branchID, err := crud.ParseParam(r, "branchID")
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	svc := h.service(r)
	cat, loadErr := h.load(r, svc, branchID)
	modal, _ := svc.Controller(branchID).FromQuery(r.URL.Query(), crud.FindByID(cat.Products, productID))
	h.render(w, r, cat, loadErr, modal, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	branchID, err := crud.ParseParam(r, "branchID")
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	form, err := formFromRequest(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller(branchID)
	state := listing.ParseState(r.URL.Query(), CategoryKey)
	next, ok, err := ctrl.Submit(r.Context(), ctrl.OpenCreate(), form)
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(branchPath(branchID)), "success", "Produk berhasil ditambahkan")
		return
	}
	h.fail(w, r, svc, branchID, next, err)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	branchID, err := crud.ParseParam(r, "branchID")
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	id, err := crud.ParseID(r)
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	form, err := formFromRequest(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller(branchID)
	state := listing.ParseState(r.URL.Query(), CategoryKey)
	next, ok, err := ctrl.Submit(r.Context(), ctrl.OpenEdit(Product{ID: id}), form)
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(branchPath(branchID)), "success", "Produk berhasil diperbarui")
		return
	}
	h.fail(w, r, svc, branchID, next, err)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	branchID, err := crud.ParseParam(r, "branchID")
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	id, err := crud.ParseID(r)
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller(branchID)
	state := listing.ParseState(r.URL.Query(), CategoryKey)
	next, ok, err := ctrl.Execute(r.Context(), ctrl.Confirm(Product{ID: id}, crud.ActionDelete), Form{})
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(branchPath(branchID)), "success", "Produk berhasil dihapus")
		return
	}
	h.fail(w, r, svc, branchID, next, err)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, svc *Service, branchID int64, modal crud.State[Product, Form], err error) {
	h.credentials.Observe(r, err)
	h.logger.Warn("product action failed", slog.Any("error", err), slog.Int64("branch_id", branchID), slog.String("mode", string(modal.Mode)))
	modal.Form.Image = nil
	cat, loadErr := h.load(r, svc, branchID)
	if modal.Entity != nil {
		if loaded, found := crud.FindLoaded(cat.Products, modal.Entity.ID, productID); found {
			modal.Entity = &loaded
		}
	}
	h.render(w, r, cat, loadErr, modal, crud.StatusFor(err))
}

func (h *Handler) load(r *http.Request, svc *Service, branchID int64) (Catalog, string) {
	cat, err := svc.Catalog(r.Context(), branchID)
	if err == nil {
		return cat, ""
	}
	h.credentials.Observe(r, err)
	h.logger.Error("list products failed", slog.Any("error", err), slog.Int64("branch_id", branchID))
	cat.Products = []Product{}
	return cat, listing.FailureMessage(err, apiclient.MessageOf(err, "Gagal memuat produk"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, cat Catalog, loadErr string, modal crud.State[Product, Form], status int) {
	state := listing.ParseState(r.URL.Query(), CategoryKey)
	filtered := listing.Filter(cat.Products, state.Search, searchFields,
		listing.Equals(state.Filter(CategoryKey), Product.CategoryKey))
	title := "Produk"
	if cat.Branch.Name != "" {
		title = "Produk " + cat.Branch.Name
	}
	h.responder.Render(w, r, "pages/products.html", title, listPage{
		Path:       branchPath(cat.Branch.ID),
		Catalog:    cat,
		State:      state,
		Page:       listing.Paginate(filtered, state.Page, listing.DefaultPerPage),
		Categories: cat.Categories,
		Error:      loadErr,
		Modal:      modal,
	}, status)
}

func branchPath(branchID int64) string {
	return fmt.Sprintf("%s/%d", pickerPath, branchID)
}

// formFromRequest reads the multipart (or url-encoded) product form. The
// image is optional.
func formFromRequest(r *http.Request) (Form, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return Form{}, err
	}
	form := Form{
		Name:       r.PostFormValue("nama_produk"),
		Code:       r.PostFormValue("kode_produk"),
		Unit:       r.PostFormValue("satuan"),
		Price:      r.PostFormValue("harga"),
		CategoryID: r.PostFormValue("kategori_id"),
	}
	file, header, err := r.FormFile("gambar")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form, nil
	case err != nil:
		return Form{}, err
	}
	defer file.Close()
	if header.Size == 0 {
		return form, nil
	}
	if header.Size > maxUploadBytes {
		form.ImageTooLarge = true
		return form, nil
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return Form{}, err
	}
	form.Image = &apiclient.File{Field: "gambar", Name: header.Filename, Content: bytes.NewReader(content)}
	return form, nil
}
