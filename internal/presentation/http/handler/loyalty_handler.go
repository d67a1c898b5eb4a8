package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
)

// LoyaltyHandler exposes loyalty point balances
type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// Balance returns the accumulated points for a CPF
func (h *LoyaltyHandler) Balance(c *gin.Context) {
	cpf := c.Param("cpf")
	if cpf == "" {
		response.BadRequest(c, "CPF is required")
		return
	}

	account, err := h.loyaltyService.Balance(c.Request.Context(), cpf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loyalty balance retrieved", account)
}
