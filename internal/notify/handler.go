package notify

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/savings"
	"cloud-savings/internal/shared/server/middleware"
	"cloud-savings/internal/shared/server/respond"
)

// Handler wires the notify and delivery routes.
type Handler struct {
	Svc     *Service
	Savings *savings.Service
	// Limit, when set, guards the notify route per session.
	Limit gin.HandlerFunc
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, savingsSvc *savings.Service, limit gin.HandlerFunc) *Handler {
	return &Handler{Svc: svc, Savings: savingsSvc, Limit: limit}
}

// RegisterRoutes attaches notification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/savings")
	notifyChain := []gin.HandlerFunc{middleware.Session()}
	if h.Limit != nil {
		notifyChain = append(notifyChain, h.Limit)
	}
	g.POST("/notify", append(notifyChain, h.notify)...)
	g.GET("/deliveries", h.deliveries)
}

func (h *Handler) notify(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resource configuration", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return
	}
	if _, err := ValidateRecipient(req.Recipient); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", InvalidRecipientMessage, []map[string]string{
			{"field": "recipient", "issue": "invalid_email"},
		})
		return
	}
	cfg, err := req.ToConfig()
	if err != nil {
		savings.RespondError(c, err)
		return
	}
	res, err := h.Savings.Analyze(c.Request.Context(), cfg)
	if err != nil {
		savings.RespondError(c, err)
		return
	}
	c.Set("serviceType", string(cfg.ServiceType))
	c.Set("recommendationCount", len(res.Recommendations))

	delivery, err := h.Svc.Notify(c.Request.Context(), req.Recipient, cfg, res)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRecipient):
			respond.Error(c, http.StatusBadRequest, "validation_error", InvalidRecipientMessage, nil)
		case errors.Is(err, ErrMailNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "email notifications are not configured", nil)
		case errors.Is(err, ErrSendFailed):
			respond.Error(c, http.StatusBadGateway, "mail_failed", fmt.Sprintf("Failed to send email: %s", delivery.Error), gin.H{
				"deliveryId": delivery.ID,
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send email", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"message":  fmt.Sprintf("Email sent to %s", delivery.Recipient),
		"delivery": toDeliveryResponse(delivery),
		"result":   savings.ToResultResponse(cfg, res),
	})
}

func (h *Handler) deliveries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be between 1 and 200", nil)
			return
		}
		limit = parsed
	}
	list, err := h.Svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list deliveries", nil)
		return
	}
	out := make([]DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliveryResponse(d))
	}
	respond.OK(c, gin.H{"deliveries": out})
}
