package leads

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/shared/server/middleware"
	"cloud-savings/internal/shared/server/respond"
	"cloud-savings/internal/shared/telemetry"
)

const maxUploadBytes = 5 << 20

// ChartRenderer turns chart data into a standalone HTML page.
type ChartRenderer interface {
	RenderLeads(w io.Writer, charts Charts) error
}

// Handler wires HTTP handlers to the lead service.
type Handler struct {
	Svc      *Service
	Renderer ChartRenderer
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, renderer ChartRenderer) *Handler {
	return &Handler{Svc: svc, Renderer: renderer}
}

// RegisterRoutes attaches lead routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/leads", middleware.Session())
	g.POST("/upload", h.upload)
	g.POST("", h.add)
	g.GET("", h.list)
	g.GET("/top", h.top)
	g.GET("/summary", h.summary)
	g.GET("/charts", h.charts)
	g.GET("/charts.html", h.chartsHTML)
	g.GET("/export", h.export)
	g.POST("/sync", h.sync)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", []map[string]string{
			{"field": "file", "issue": "required"},
		})
		return
	}
	f, err := file.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer f.Close()

	records, err := h.Svc.Upload(c.Request.Context(), middleware.SessionIDFromContext(c), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("leadCount", len(records))
	respond.OK(c, toLeadsResponse(records))
}

func (h *Handler) add(c *gin.Context) {
	var req AddLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid lead", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return
	}
	rec, err := h.Svc.Add(c.Request.Context(), middleware.SessionIDFromContext(c), req.toRecord())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Svc.List(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("leadCount", len(records))
	respond.OK(c, toLeadsResponse(records))
}

func (h *Handler) top(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	records, err := h.Svc.Top(c.Request.Context(), middleware.SessionIDFromContext(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, toLeadsResponse(records))
}

func (h *Handler) summary(c *gin.Context) {
	summary, err := h.Svc.Summary(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) charts(c *gin.Context) {
	charts, err := h.Svc.Charts(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, charts)
}

func (h *Handler) chartsHTML(c *gin.Context) {
	if h.Renderer == nil {
		respond.Error(c, http.StatusNotImplemented, "not_configured", "chart rendering is not available", nil)
		return
	}
	charts, err := h.Svc.Charts(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.Renderer.RenderLeads(&buf, charts); err != nil {
		h.fail(c, err)
		return
	}
	respond.HTML(c, buf.Bytes())
}

func (h *Handler) export(c *gin.Context) {
	data, err := h.Svc.Export(c.Request.Context(), middleware.SessionIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Attachment(c, ExportFileName, ExportContentType, data)
}

func (h *Handler) sync(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	sent, err := h.Svc.Sync(c.Request.Context(), middleware.SessionIDFromContext(c), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("leadCount", len(sent))
	respond.OK(c, toLeadsResponse(sent))
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 1000 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be between 1 and 1000", []map[string]string{
			{"field": "limit", "issue": "out_of_range"},
		})
		return 0, false
	}
	return limit, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCSV), errors.Is(err, ErrMissingColumn):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), []map[string]string{
			{"field": "file", "issue": "invalid_csv"},
		})
	case errors.Is(err, ErrSessionRequired):
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
	case errors.Is(err, ErrNoLeads):
		respond.Error(c, http.StatusConflict, "no_leads", "upload or add leads first", nil)
	case errors.Is(err, ErrSyncNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "CRM sync is not configured", nil)
	case errors.Is(err, ErrSyncFailed):
		respond.Error(c, http.StatusBadGateway, "sync_failed", "CRM rejected the leads", nil)
	default:
		telemetry.Error("leads.request_failed", map[string]any{
			"session_id": middleware.SessionIDFromContext(c),
			"route":      c.FullPath(),
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
