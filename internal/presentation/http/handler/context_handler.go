package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/request"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
)

// ContextHandler exposes order contexts: snapshots, party size, review
// status, clearing, and the floor overview.
type ContextHandler struct {
	registry *service.RegistryService
}

// NewContextHandler creates a new context handler
func NewContextHandler(registry *service.RegistryService) *ContextHandler {
	return &ContextHandler{registry: registry}
}

// Get returns the full snapshot of a context with its derived totals
func (h *ContextHandler) Get(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot := h.registry.Snapshot(key)
	response.OK(c, "Context retrieved", gin.H{
		"context": snapshot,
		"totals":  service.ComputeTotals(snapshot),
	})
}

// List returns the floor overview: every context currently holding state,
// with its item count and running total.
func (h *ContextHandler) List(c *gin.Context) {
	keys := h.registry.ActiveKeys()

	overview := make([]gin.H, 0, len(keys))
	for _, key := range keys {
		snapshot := h.registry.Snapshot(key)
		totals := service.ComputeTotals(snapshot)
		overview = append(overview, gin.H{
			"key":            key,
			"item_count":     len(snapshot.Items),
			"has_sent_items": snapshot.HasSentItems(),
			"party_size":     snapshot.PartySize,
			"reviewed":       snapshot.Reviewed,
			"total":          totals.Total,
		})
	}

	response.OK(c, "Active contexts retrieved", overview)
}

// SetPartySize records the number of covers on a context
func (h *ContextHandler) SetPartySize(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.PartySizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.registry.SetPartySize(c.Request.Context(), key, req.Size); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party size updated", nil)
}

// SetReviewed flags the order as reviewed with the customer
func (h *ContextHandler) SetReviewed(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.ReviewedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.registry.SetReviewed(c.Request.Context(), key, req.Reviewed); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Review status updated", nil)
}

// Clear abandons the context's cart and adjustments
func (h *ContextHandler) Clear(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.registry.Clear(c.Request.Context(), key)
	response.OK(c, "Context cleared", nil)
}
