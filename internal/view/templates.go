package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	basePath  string
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	BasePath    string
	User        *shared.SessionUser
	Menu        []MenuEntry
	Data        any
}

// NewEngine parses the embedded templates. basePath prefixes every URL the
// templates build with the url func.
func NewEngine(basePath string) (*Engine, error) {
	funcMap := template.FuncMap{
		"url": func(path string) string {
			return basePath + path
		},
		"rupiah":         func(v any) string { return shared.FormatRupiah(toFloat(v)) },
		"number":         func(v any) string { return shared.FormatNumber(toFloat(v)) },
		"formatDate":     func(v any) string { return shared.FormatDate(toTime(v)) },
		"formatDateTime": func(v any) string { return shared.FormatDateTime(toTime(v)) },
		"orDash":         shared.OrDash,
		"titleWords":     shared.TitleWords,
		"initial": func(s string) string {
			s = strings.TrimSpace(s)
			if s == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(s)[:1]))
		},
		"add":  func(a, b int) int { return a + b },
		"id":   func(v int64) string { return strconv.FormatInt(v, 10) },
		"itoa": strconv.Itoa,
		"eq64": func(a, b int64) bool { return a == b },
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict: odd number of arguments")
			}
			out := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				out[key] = pairs[i+1]
			}
			return out, nil
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl, basePath: basePath}, nil
}

// BasePath returns the URL prefix the engine was built with.
func (e *Engine) BasePath() string {
	if e == nil {
		return ""
	}
	return e.basePath
}

// Render executes a named template with TemplateData. Output is buffered so
// a template error never leaves a half-written page.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	return e.RenderStatus(w, name, data, http.StatusOK)
}

// RenderStatus is Render with an explicit status code.
func (e *Engine) RenderStatus(w http.ResponseWriter, name string, data TemplateData, status int) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.Copy(w, &buf)
	return err
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case shared.Decimal:
		return float64(n)
	case *shared.Decimal:
		if n == nil {
			return 0
		}
		return float64(*n)
	default:
		return 0
	}
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t == nil {
			return time.Time{}
		}
		return *t
	case shared.Timestamp:
		return t.Time
	case *shared.Timestamp:
		if t == nil {
			return time.Time{}
		}
		return t.Time
	case string:
		parsed, _ := shared.ParseTimestamp(t)
		return parsed
	default:
		return time.Time{}
	}
}
