package stockrequests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

type mockRepository struct {
	items    []StockRequest
	approved []int64
	rejected map[int64]string
}

func (m *mockRepository) List(context.Context) ([]StockRequest, error) { return m.items, nil }

func (m *mockRepository) Approve(_ context.Context, id int64) error {
	m.approved = append(m.approved, id)
	return nil
}

func (m *mockRepository) Reject(_ context.Context, id int64, reason string) error {
	if m.rejected == nil {
		m.rejected = map[int64]string{}
	}
	m.rejected[id] = reason
	return nil
}

// twelveRequests has 5 pending, 4 approved and 3 rejected requests.
func twelveRequests() []StockRequest {
	statuses := []string{
		StatusPending, StatusApproved, StatusPending, StatusRejected,
		StatusPending, StatusApproved, StatusApproved, StatusPending,
		StatusRejected, StatusApproved, StatusPending, StatusRejected,
	}
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]StockRequest, len(statuses))
	for i, st := range statuses {
		created := internalShared.Timestamp{Time: day.AddDate(0, 0, i%3)}
		out[i] = StockRequest{
			ID:        int64(i + 1),
			Status:    st,
			CreatedAt: &created,
			Branch:    &shared.BranchRef{ID: 1, Name: "Cabang Pusat"},
			Product:   &shared.ProductRef{ID: int64(i + 1), Name: "Produk"},
		}
	}
	return out
}

func TestTabsCountWholeList(t *testing.T) {
	tabs := Tabs(twelveRequests(), StatusPending)
	require.Len(t, tabs, 4)
	assert.Equal(t, 12, tabs[0].Count)
	assert.Equal(t, 5, tabs[1].Count)
	assert.Equal(t, 4, tabs[2].Count)
	assert.Equal(t, 3, tabs[3].Count)
	assert.True(t, tabs[1].Active)
	assert.False(t, tabs[0].Active)

	assert.True(t, Tabs(nil, "")[0].Active, "no tab selected means all")
}

func TestPendingTabPaginates(t *testing.T) {
	state := listing.ParseState(map[string][]string{StatusKey: {StatusPending}}, StatusKey, DateKey)
	visible := Visible(twelveRequests(), state)
	require.Len(t, visible, 5)
	page := listing.Paginate(visible, 1, listing.DefaultPerPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 5)
	for _, r := range page.Items {
		assert.True(t, r.Pending())
	}

	all := listing.Paginate(Visible(twelveRequests(), listing.NewState(StatusKey, DateKey)), 3, listing.DefaultPerPage)
	assert.Equal(t, 3, all.TotalPages)
	assert.Len(t, all.Items, 2)
}

func TestVisibleFiltersByDate(t *testing.T) {
	state := listing.ParseState(map[string][]string{DateKey: {"2024-05-02"}}, StatusKey, DateKey)
	visible := Visible(twelveRequests(), state)
	require.Len(t, visible, 4)
	for _, r := range visible {
		assert.Equal(t, "2024-05-02", r.CreatedDate())
	}
}

func TestRejectRequiresReason(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, nil)
	pending := StockRequest{ID: 3, Status: StatusPending}

	err := svc.Reject(context.Background(), pending, RejectForm{Reason: "   "})
	require.Error(t, err)
	assert.Equal(t, msgReasonRequired, err.Error())
	assert.Empty(t, repo.rejected)

	require.NoError(t, svc.Reject(context.Background(), pending, RejectForm{Reason: " stok gudang habis "}))
	assert.Equal(t, "stok gudang habis", repo.rejected[3])
}

func TestDecisionsOnlyForPending(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, nil)

	err := svc.Approve(context.Background(), StockRequest{ID: 2, Status: StatusApproved})
	require.Error(t, err)
	assert.Equal(t, msgAlreadyDecided, err.Error())
	assert.Empty(t, repo.approved)

	require.NoError(t, svc.Approve(context.Background(), StockRequest{ID: 1, Status: StatusPending}))
	assert.Equal(t, []int64{1}, repo.approved)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", StatusLabel(StatusPending))
	assert.Equal(t, "Disetujui", StatusLabel(StatusApproved))
	assert.Equal(t, "Ditolak", StatusLabel(StatusRejected))
	assert.Equal(t, "draft", StatusLabel("draft"))
}
