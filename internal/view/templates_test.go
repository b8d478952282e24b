package view

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/web"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine("")
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestEnginePrefixesURLs(t *testing.T) {
	engine, err := NewEngine("/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", engine.BasePath())

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "pages/login.html", TemplateData{Title: "Masuk", Data: map[string]any{
		"Form":   map[string]string{"Email": ""},
		"Errors": map[string]string{},
	}}))
	body := rec.Body.String()
	assert.Contains(t, body, `action="/dashboard/login"`)
	assert.Contains(t, body, `href="/dashboard/static/css/app.css"`)
}

func TestParseNavigation(t *testing.T) {
	nav, err := ParseNavigation(web.Navigation)
	require.NoError(t, err)

	menu := nav.Resolve("/admin/produk/3", "/dashboard")
	require.NotEmpty(t, menu)
	assert.Equal(t, "Dashboard", menu[0].Label)
	assert.Equal(t, "/dashboard/admin/dashboard", menu[0].Href)
	assert.False(t, menu[0].Active)

	var master MenuEntry
	for _, entry := range menu {
		if entry.Label == "Master Cabang" {
			master = entry
		}
	}
	assert.True(t, master.Open, "group opens while a child is active")
	require.Len(t, master.Children, 3)
	assert.True(t, master.Children[1].Active)
	assert.False(t, master.Children[0].Active)
}

func TestParseNavigationRejectsBadInput(t *testing.T) {
	_, err := ParseNavigation([]byte("[]"))
	assert.Error(t, err)

	_, err = ParseNavigation([]byte("- label: Kosong\n"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Kosong"))

	_, err = ParseNavigation([]byte(":::"))
	assert.Error(t, err)
}

func TestIsActivePath(t *testing.T) {
	assert.True(t, IsActivePath("/admin/produk/3", "/admin/produk", false))
	assert.False(t, IsActivePath("/admin/produk-lain", "/admin/produk", false))
	assert.True(t, IsActivePath("/admin/dashboard/", "/admin/dashboard", true))
	assert.False(t, IsActivePath("/admin/dashboard/x", "/admin/dashboard", true))
}
