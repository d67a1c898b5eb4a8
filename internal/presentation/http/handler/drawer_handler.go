package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/request"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
)

// DrawerHandler manages cash drawer sessions
type DrawerHandler struct {
	drawerService *service.DrawerService
}

// NewDrawerHandler creates a new drawer handler
func NewDrawerHandler(drawerService *service.DrawerService) *DrawerHandler {
	return &DrawerHandler{drawerService: drawerService}
}

// Open starts a drawer session with the counted opening float
func (h *DrawerHandler) Open(c *gin.Context) {
	var req request.OpenDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount, err := parseAmount(req.OpeningAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.drawerService.Open(c.Request.Context(), GetOperator(c), amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Drawer opened", session)
}

// Current returns the open drawer session
func (h *DrawerHandler) Current(c *gin.Context) {
	session, err := h.drawerService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drawer session retrieved", session)
}

// Movement records a manual payout or deposit
func (h *DrawerHandler) Movement(c *gin.Context) {
	var req request.DrawerMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.drawerService.RecordManual(c.Request.Context(), req.Kind, amount, req.Description); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Movement recorded", nil)
}

// Close closes the session against the declared counted amount.
// Gated by the supervisor middleware.
func (h *DrawerHandler) Close(c *gin.Context) {
	var req request.CloseDrawerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount, err := parseAmount(req.DeclaredAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.drawerService.Close(c.Request.Context(), amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drawer closed", session)
}
