package request

import "github.com/tk-rocha/garcom-api/internal/domain/enum"

// PaymentRequest is one tendered payment on finalize
type PaymentRequest struct {
	Method enum.PaymentMethod `json:"method"`
	Amount string             `json:"amount" binding:"required"`
}

// FinalizeRequest closes out a context into a sale
type FinalizeRequest struct {
	Payments       []PaymentRequest `json:"payments" binding:"required,min=1"`
	DiscardPending bool             `json:"discard_pending"`
	CustomerCPF    *string          `json:"customer_cpf"`
	LoyaltyCPF     *string          `json:"loyalty_cpf"`
}

// CancelSaleRequest voids a finalized sale. A reason is mandatory.
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required"`
}
