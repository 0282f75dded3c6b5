package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is what the dashboard template renders.
type PageData struct {
	Title          string
	View           dashboard.View
	ComparisonJSON string
	AuxiliaryJSON  string
}

type PageController struct {
	svc Dashboard
}

func NewPageController(svc Dashboard) (*PageController, error) {
	if svc == nil {
		return nil, errors.New("dashboard service is nil")
	}
	return &PageController{svc: svc}, nil
}

func (c *PageController) RegisterRoutes(router *gin.Engine) error {
	if c == nil {
		return errors.New("page controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	tmpl, err := Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/dashboard")
	})
	router.GET("/dashboard", c.dashboard)
	router.GET("/dashboard/content", c.content)
	return nil
}

func (c *PageController) dashboard(ctx *gin.Context) {
	data, err := c.pageData()
	if err != nil {
		_ = ctx.Error(err)
		ctx.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	ctx.HTML(http.StatusOK, "dashboard.html", data)
}

// content renders only the part of the page that changes with the session.
func (c *PageController) content(ctx *gin.Context) {
	data, err := c.pageData()
	if err != nil {
		_ = ctx.Error(err)
		ctx.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	ctx.HTML(http.StatusOK, "content", data)
}

func (c *PageController) pageData() (PageData, error) {
	v := c.svc.View()
	comparison, err := json.Marshal(v.Charts.Comparison)
	if err != nil {
		return PageData{}, fmt.Errorf("marshal comparison chart: %w", err)
	}
	auxiliary, err := json.Marshal(v.Charts.Auxiliary)
	if err != nil {
		return PageData{}, fmt.Errorf("marshal auxiliary chart: %w", err)
	}
	return PageData{
		Title:          "Energy Forecast",
		View:           v,
		ComparisonJSON: string(comparison),
		AuxiliaryJSON:  string(auxiliary),
	}, nil
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

var templateFuncs = template.FuncMap{
	"num":   formatNumber,
	"pct":   formatPercent,
	"date":  formatDate,
	"bytes": formatBytes,
	"add":   func(a, b int) int { return a + b },
}

// formatNumber renders float64 or *float64 with two decimals; nil is "-".
func formatNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', 2, 64)
	case *float64:
		if n == nil {
			return "-"
		}
		return strconv.FormatFloat(*n, 'f', 2, 64)
	}
	return fmt.Sprint(v)
}

func formatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + "%"
}

func formatDate(d model.Date) string {
	return d.String()
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', 1, 64) + " MB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', 1, 64) + " KB"
	}
	return strconv.Itoa(n) + " B"
}
