package entity

import "time"

// LoyaltyAccount accumulates points per customer tax id (CPF). Accrual is
// one point per whole currency unit of a sale's net amount.
type LoyaltyAccount struct {
	CPF       string    `gorm:"size:14;primary_key" json:"cpf"`
	Points    int64     `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the LoyaltyAccount model
func (LoyaltyAccount) TableName() string {
	return "loyalty_accounts"
}
