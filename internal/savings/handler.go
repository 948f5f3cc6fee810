package savings

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/shared/server/respond"
)

// ComparisonRenderer draws the before/after chart as an HTML page.
type ComparisonRenderer interface {
	RenderComparison(w io.Writer, cfg ResourceConfig, cmp Comparison) error
}

// Handler wires HTTP handlers to the savings service.
type Handler struct {
	Svc      *Service
	Renderer ComparisonRenderer
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, renderer ComparisonRenderer) *Handler {
	return &Handler{Svc: svc, Renderer: renderer}
}

// RegisterRoutes attaches savings routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/savings")
	g.GET("/catalog", h.catalog)
	g.POST("/analyze", h.analyze)
	g.POST("/visualize", h.visualize)
}

func (h *Handler) catalog(c *gin.Context) {
	respond.OK(c, gin.H{
		"services":           Catalog(),
		"billingFrequencies": []BillingFrequency{BillingHourly, BillingMonthly},
	})
}

func (h *Handler) analyze(c *gin.Context) {
	cfg, ok := BindConfig(c)
	if !ok {
		return
	}
	res, err := h.Svc.Analyze(c.Request.Context(), cfg)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Set("serviceType", string(cfg.ServiceType))
	c.Set("recommendationCount", len(res.Recommendations))
	respond.OK(c, ToResultResponse(cfg, res))
}

func (h *Handler) visualize(c *gin.Context) {
	cfg, ok := BindConfig(c)
	if !ok {
		return
	}
	cmp, err := h.Svc.Compare(c.Request.Context(), cfg)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Set("serviceType", string(cfg.ServiceType))
	if c.Query("format") != "html" {
		respond.OK(c, toComparisonResponse(cfg, cmp))
		return
	}
	if h.Renderer == nil {
		respond.Error(c, http.StatusNotImplemented, "not_configured", "chart rendering is not available", nil)
		return
	}
	var buf bytes.Buffer
	if err := h.Renderer.RenderComparison(&buf, cfg, cmp); err != nil {
		RespondError(c, err)
		return
	}
	respond.HTML(c, buf.Bytes())
}

// BindConfig decodes a ConfigRequest body and writes a 400 on failure.
func BindConfig(c *gin.Context) (ResourceConfig, bool) {
	var req ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resource configuration", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return ResourceConfig{}, false
	}
	cfg, err := req.ToConfig()
	if err != nil {
		RespondError(c, err)
		return ResourceConfig{}, false
	}
	return cfg, true
}

// RespondError maps savings errors onto the error envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}
