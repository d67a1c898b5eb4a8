package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DrawerSession represents the lifecycle of a cash drawer between open and
// close. ExpectedAmount is computed at close: opening float plus all cash
// movements recorded during the session.
type DrawerSession struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OperatorID     string           `gorm:"size:100;not null" json:"operator_id"`
	OperatorName   string           `gorm:"size:255" json:"operator_name"`
	OpeningAmount  decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"opening_amount"`
	ExpectedAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"expected_amount,omitempty"`
	DeclaredAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"declared_amount,omitempty"`
	Deviation      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"deviation,omitempty"`
	Open           bool             `gorm:"default:true;index" json:"open"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`

	// Relationships
	Movements []DrawerMovement `gorm:"foreignKey:SessionID" json:"movements,omitempty"`
}

// BeforeCreate generates a UUID before creating a new drawer session
func (d *DrawerSession) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DrawerSession model
func (DrawerSession) TableName() string {
	return "drawer_sessions"
}

// DrawerMovement is an immutable entry in the drawer ledger. Movements are
// never modified or deleted; a cancelled sale produces an inverse entry.
type DrawerMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"session_id"`
	Kind        string          `gorm:"size:20;not null" json:"kind"` // sale | payout | deposit | reversal
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid" json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Session DrawerSession `gorm:"foreignKey:SessionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new drawer movement
func (m *DrawerMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DrawerMovement model
func (DrawerMovement) TableName() string {
	return "drawer_movements"
}
