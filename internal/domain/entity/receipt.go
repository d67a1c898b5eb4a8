package entity

// ReceiptHeader holds the store/business header shown at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// ReceiptPayment represents one payment line on a receipt.
type ReceiptPayment struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
	Change string `json:"change,omitempty"`
}

// Receipt is a value object representing a customer-facing receipt.
// It is NOT a database entity — it is composed from a finalized sale at
// display time. Amounts are pre-formatted in BRL.
type Receipt struct {
	Header      ReceiptHeader    `json:"header"`
	CupomNumber int64            `json:"cupom_number"`
	Date        string           `json:"date"`
	Context     string           `json:"context"`
	Operator    string           `json:"operator,omitempty"`
	CustomerCPF string           `json:"customer_cpf,omitempty"`
	Items       []ReceiptItem    `json:"items"`
	SubTotal    string           `json:"sub_total"`
	Discount    string           `json:"discount,omitempty"`
	Tax         string           `json:"tax,omitempty"`
	ServiceFee  string           `json:"service_fee,omitempty"`
	Total       string           `json:"total"`
	Payments    []ReceiptPayment `json:"payments"`
	Change      string           `json:"change,omitempty"`
	Cancelled   bool             `json:"cancelled,omitempty"`
}
