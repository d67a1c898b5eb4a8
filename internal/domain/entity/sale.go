package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is the immutable record created at finalize time. CupomNumber is
// assigned from an atomic, gapless sequence and never reused, even after
// cancellation.
type Sale struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CupomNumber      int64           `gorm:"unique;not null;index" json:"cupom_number"`
	SaleDate         time.Time       `gorm:"type:date;not null;index" json:"sale_date"`
	ContextType      string          `gorm:"size:20;not null" json:"context_type"`
	ContextNumber    int             `gorm:"default:0" json:"context_number"`
	GrossAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_amount"`
	NetAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_amount"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	ServiceFeeAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"service_fee_amount"`
	ChangeAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"change_amount"`
	CustomerCPF      *string         `gorm:"size:14" json:"customer_cpf,omitempty"`
	LoyaltyCPF       *string         `gorm:"size:14" json:"loyalty_cpf,omitempty"`
	OperatorID       string          `gorm:"size:100" json:"operator_id"`
	OperatorName     string          `gorm:"size:255" json:"operator_name"`
	Status           enum.SaleStatus `gorm:"default:0" json:"status"`
	CancelReason     *string         `gorm:"type:text" json:"cancel_reason,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relationships
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is a frozen copy of a cart line item at finalize time
type SaleItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Observation   string          `gorm:"size:40" json:"observation,omitempty"`
	SentToKitchen bool            `gorm:"default:false" json:"sent_to_kitchen"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Payment is one of the 0..N payments recorded against a sale
type Payment struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"sale_id"`
	Method      enum.PaymentMethod `gorm:"default:0" json:"method"`
	Amount      decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	ChangeGiven decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"change_given"`
	CreatedAt   time.Time          `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
