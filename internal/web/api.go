package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"energy_forecast/internal/dashboard"
	"energy_forecast/internal/export"
	"energy_forecast/internal/forecast"
	"energy_forecast/internal/model"
	"energy_forecast/internal/state"
)

// maxDatasetBytes bounds an uploaded CSV.
const maxDatasetBytes = 32 << 20

// Dashboard is the session API the controllers drive.
type Dashboard interface {
	View() dashboard.View
	Filtered() []model.PredictionRecord
	SelectFile(name string, data []byte) (state.State, error)
	SelectModel(raw string) (state.State, error)
	Upload(ctx context.Context) (forecast.UploadResult, error)
	Predict(ctx context.Context) ([]model.PredictionRecord, error)
	SetRange(rng model.DateRange) state.State
	SetPageSize(n int) (state.State, error)
	SetPage(n int) state.State
}

type APIController struct {
	svc     Dashboard
	timeout time.Duration
}

type ModelRequest struct {
	Model string `json:"model"`
}

type FilterRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type PageSizeRequest struct {
	PageSize int `json:"page_size"`
}

type PageRequest struct {
	Page int `json:"page"`
}

// NewAPIController builds the JSON API. A positive timeout bounds each call
// to the prediction service.
func NewAPIController(svc Dashboard, timeout time.Duration) (*APIController, error) {
	if svc == nil {
		return nil, errors.New("dashboard service is nil")
	}
	return &APIController{svc: svc, timeout: timeout}, nil
}

func (c *APIController) RegisterRoutes(router gin.IRouter) error {
	if c == nil {
		return errors.New("api controller is nil")
	}
	if router == nil {
		return errors.New("router is nil")
	}

	api := router.Group("/api")
	api.GET("/view", c.getView)
	api.GET("/models", c.getModels)
	api.POST("/file", c.postFile)
	api.POST("/upload", c.postUpload)
	api.POST("/predict", c.postPredict)
	api.PUT("/model", c.putModel)
	api.PUT("/filter", c.putFilter)
	api.PUT("/page-size", c.putPageSize)
	api.PUT("/page", c.putPage)
	api.GET("/export", c.getExport)
	return nil
}

func (c *APIController) getView(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) getModels(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.svc.View().Models)
}

func (c *APIController) postFile(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		c.fail(ctx, state.ErrNoFile, "")
		return
	}
	if header.Size > maxDatasetBytes {
		c.fail(ctx, fmt.Errorf("%w: file exceeds %d bytes", errBadRequest, maxDatasetBytes), "")
		return
	}

	f, err := header.Open()
	if err != nil {
		c.fail(ctx, err, "")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxDatasetBytes))
	if err != nil {
		c.fail(ctx, err, "")
		return
	}

	if _, err := c.svc.SelectFile(header.Filename, data); err != nil {
		c.fail(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) postUpload(ctx *gin.Context) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.svc.Upload(callCtx); err != nil {
		c.fail(ctx, err, dashboard.MsgUploadFailed)
		return
	}
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) postPredict(ctx *gin.Context) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.svc.Predict(callCtx); err != nil {
		c.fail(ctx, err, dashboard.MsgPredictFailed)
		return
	}
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) putModel(ctx *gin.Context) {
	var req ModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err), "")
		return
	}
	if _, err := c.svc.SelectModel(req.Model); err != nil {
		c.fail(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) putFilter(ctx *gin.Context) {
	var req FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err), "")
		return
	}
	rng, err := model.ParseDateRange(req.Start, req.End)
	if err != nil {
		c.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err), "")
		return
	}
	c.svc.SetRange(rng)
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) putPageSize(ctx *gin.Context) {
	var req PageSizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err), "")
		return
	}
	if _, err := c.svc.SetPageSize(req.PageSize); err != nil {
		c.fail(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) putPage(ctx *gin.Context) {
	var req PageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err), "")
		return
	}
	c.svc.SetPage(req.Page)
	ctx.JSON(http.StatusOK, c.svc.View())
}

func (c *APIController) getExport(ctx *gin.Context) {
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		c.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err), "")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="predictions.%s"`, format))
	ctx.Header("Content-Type", format.ContentType())
	ctx.Status(http.StatusOK)
	if err := export.Write(ctx.Writer, format, c.svc.Filtered()); err != nil {
		_ = ctx.Error(err)
	}
}

// callContext outlives the HTTP request and applies the configured timeout.
func (c *APIController) callContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx.Request.Context())
	if c.timeout > 0 {
		return context.WithTimeout(base, c.timeout)
	}
	return context.WithCancel(base)
}

func (c *APIController) fail(ctx *gin.Context, err error, remote string) {
	_ = ctx.Error(err)
	status, body := errorResponse(err, remote)
	ctx.JSON(status, body)
}
