package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tk-rocha/garcom-api/internal/application/service"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/presentation/http/dto/response"
	"github.com/tk-rocha/garcom-api/pkg/pagination"
)

// SaleHandler exposes finalized sales: lookup, receipts, the daily listing
// and the reconciled daily total.
type SaleHandler struct {
	checkoutService *service.CheckoutService
	ledgerService   *service.LedgerService
	receiptHeader   entity.ReceiptHeader
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(checkoutService *service.CheckoutService, ledgerService *service.LedgerService, receiptHeader entity.ReceiptHeader) *SaleHandler {
	return &SaleHandler{
		checkoutService: checkoutService,
		ledgerService:   ledgerService,
		receiptHeader:   receiptHeader,
	}
}

// Get returns a sale by cupom number
func (h *SaleHandler) Get(c *gin.Context) {
	cupom, err := strconv.ParseInt(c.Param("cupom"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid cupom number")
		return
	}

	sale, err := h.checkoutService.GetSale(c.Request.Context(), cupom)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved", sale)
}

// Receipt returns the customer-facing receipt for a sale
func (h *SaleHandler) Receipt(c *gin.Context) {
	cupom, err := strconv.ParseInt(c.Param("cupom"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid cupom number")
		return
	}

	sale, err := h.checkoutService.GetSale(c.Request.Context(), cupom)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated", service.BuildReceipt(h.receiptHeader, sale))
}

// List returns a page of sales for a date (defaults to today)
func (h *SaleHandler) List(c *gin.Context) {
	date := c.DefaultQuery("date", entity.LedgerDate(time.Now()))
	if _, err := time.Parse(entity.LedgerDateFormat, date); err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.checkoutService.ListSales(c.Request.Context(), date, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved", result)
}

// DailyTotal returns the reconciled net total for a date (defaults to today)
func (h *SaleHandler) DailyTotal(c *gin.Context) {
	date := c.DefaultQuery("date", entity.LedgerDate(time.Now()))
	if _, err := time.Parse(entity.LedgerDateFormat, date); err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	total, err := h.ledgerService.RecomputeDailyTotal(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily total retrieved", gin.H{
		"date":  date,
		"total": total,
	})
}
