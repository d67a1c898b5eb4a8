package request

import "github.com/tk-rocha/garcom-api/internal/domain/enum"

// AddItemRequest adds one unit of a product to a context's cart. The
// product is identified either by its catalog UUID or by its numeric PLU
// code, whichever the terminal has at hand.
type AddItemRequest struct {
	ProductID      string                 `json:"product_id"`
	ProductCode    *int                   `json:"product_code"`
	Customizations []CustomizationRequest `json:"customizations"`
}

// CustomizationRequest is one add-on or modification on a line item
type CustomizationRequest struct {
	Label      string `json:"label" binding:"required"`
	OptionName string `json:"option_name"`
	ExtraPrice string `json:"extra_price"`
}

// ObservationRequest sets the kitchen note on a line item
type ObservationRequest struct {
	Text string `json:"text"`
}

// AdjustmentRequest sets a discount, tax or service fee on a context.
// Amount arrives as a decimal string to avoid float drift in transit.
type AdjustmentRequest struct {
	Kind         enum.AdjustmentKind `json:"kind"`
	Amount       string              `json:"amount" binding:"required"`
	Name         string              `json:"name"`
	RawInput     string              `json:"raw_input"`
	RawInputUnit string              `json:"raw_input_unit"`
}

// PartySizeRequest sets the number of covers on a table context
type PartySizeRequest struct {
	Size int `json:"size" binding:"required,min=1"`
}

// ReviewedRequest flags a table's order as reviewed with the customer
type ReviewedRequest struct {
	Reviewed bool `json:"reviewed"`
}
