package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/request"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles finalize and cancellation
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Finalize converts a context into an immutable sale
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payments := make([]service.PaymentInput, 0, len(req.Payments))
	for _, p := range req.Payments {
		amount, err := parseAmount(p.Amount)
		if err != nil {
			response.Error(c, err)
			return
		}
		payments = append(payments, service.PaymentInput{
			Method: p.Method,
			Amount: amount,
		})
	}

	input := service.FinalizeInput{
		Key:            key,
		Payments:       payments,
		DiscardPending: req.DiscardPending,
		CustomerCPF:    req.CustomerCPF,
		LoyaltyCPF:     req.LoyaltyCPF,
		Operator:       GetOperator(c),
	}

	sale, err := h.checkoutService.Finalize(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale finalized", sale)
}

// Cancel voids a finalized sale. Gated by the supervisor middleware.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	cupom, err := strconv.ParseInt(c.Param("cupom"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid cupom number")
		return
	}

	var req request.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cancellation reason is required")
		return
	}

	if err := h.checkoutService.Cancel(c.Request.Context(), cupom, req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled", nil)
}
