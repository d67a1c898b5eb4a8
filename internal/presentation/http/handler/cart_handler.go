package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/request"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

// CartHandler handles cart mutations within an order context
type CartHandler struct {
	cartService    *service.CartService
	catalogService *service.CatalogService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, catalogService *service.CatalogService) *CartHandler {
	return &CartHandler{cartService: cartService, catalogService: catalogService}
}

// AddItem adds one unit of a product to the context's cart. The product is
// resolved from the catalog by UUID or by PLU code.
func (h *CartHandler) AddItem(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.resolveProduct(c, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	customizations := make([]entity.Customization, 0, len(req.Customizations))
	for _, cr := range req.Customizations {
		extra := decimal.Zero
		if cr.ExtraPrice != "" {
			extra, err = parseAmount(cr.ExtraPrice)
			if err != nil {
				response.Error(c, err)
				return
			}
		}
		customizations = append(customizations, entity.Customization{
			Label:      cr.Label,
			OptionName: cr.OptionName,
			ExtraPrice: extra,
		})
	}

	operator := GetOperator(c)
	input := service.AddItemInput{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		ImageRef:       product.ImageRef,
		Customizations: customizations,
		Operator:       &operator,
	}

	if err := h.cartService.AddItem(c.Request.Context(), key, input); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", gin.H{"totals": h.cartService.Totals(key)})
}

func (h *CartHandler) resolveProduct(c *gin.Context, req request.AddItemRequest) (*entity.Product, error) {
	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, apperror.NewValidationError("invalid product id")
		}
		return h.catalogService.GetProduct(c.Request.Context(), id)
	}
	if req.ProductCode != nil {
		return h.catalogService.ResolveCode(c.Request.Context(), *req.ProductCode)
	}
	return nil, apperror.NewValidationError("product_id or product_code is required")
}

// DecrementItem removes one unit of a product from the cart
func (h *CartHandler) DecrementItem(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.DecrementItem(c.Request.Context(), key, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item decremented", gin.H{"totals": h.cartService.Totals(key)})
}

// RemoveItem removes a product row entirely, sent or not
func (h *CartHandler) RemoveItem(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), key, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", gin.H{"totals": h.cartService.Totals(key)})
}

// SetObservation sets the kitchen note on a line item
func (h *CartHandler) SetObservation(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cartService.SetObservation(c.Request.Context(), key, productID, req.Text); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Observation set", nil)
}

// SetDiscount sets the context discount
func (h *CartHandler) SetDiscount(c *gin.Context) {
	h.setAdjustment(c, h.cartService.SetDiscount, "Discount applied")
}

// ClearDiscount removes the context discount
func (h *CartHandler) ClearDiscount(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cartService.ClearDiscount(c.Request.Context(), key); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount removed", gin.H{"totals": h.cartService.Totals(key)})
}

// SetTax sets the context tax
func (h *CartHandler) SetTax(c *gin.Context) {
	h.setAdjustment(c, h.cartService.SetTax, "Tax applied")
}

// SetServiceFee sets the context service fee
func (h *CartHandler) SetServiceFee(c *gin.Context) {
	h.setAdjustment(c, h.cartService.SetServiceFee, "Service fee applied")
}

func (h *CartHandler) setAdjustment(
	c *gin.Context,
	apply func(ctx context.Context, key entity.ContextKey, input service.AdjustmentInput) error,
	message string,
) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := service.AdjustmentInput{
		Kind:         req.Kind,
		Amount:       amount,
		Name:         req.Name,
		RawInput:     req.RawInput,
		RawInputUnit: req.RawInputUnit,
	}

	if err := apply(c.Request.Context(), key, input); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, gin.H{"totals": h.cartService.Totals(key)})
}

// SendToKitchen marks all pending items as sent and publishes the ticket
func (h *CartHandler) SendToKitchen(c *gin.Context) {
	key, err := contextKeyParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	operator := GetOperator(c)
	if err := h.cartService.MarkAllSentToKitchen(c.Request.Context(), key, operator.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items sent to kitchen", gin.H{
		"sent": h.cartService.ItemsSent(key),
	})
}
