package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLedger caches the accumulated net total of non-cancelled sales per
// store-local calendar date. It is derived data: the authoritative value is
// always recomputable from the sales table, and reads reconcile against it.
type DailyLedger struct {
	Date      string          `gorm:"size:10;primary_key" json:"date"` // YYYY-MM-DD
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the table name for the DailyLedger model
func (DailyLedger) TableName() string {
	return "daily_ledgers"
}

// LedgerDateFormat is the calendar-date layout used as the ledger key
const LedgerDateFormat = "2006-01-02"

// LedgerDate formats a time as a ledger bucket key
func LedgerDate(t time.Time) string {
	return t.Format(LedgerDateFormat)
}

// FiscalCounter backs the gapless cupom sequence. The value is advanced with
// an atomic upsert at the store layer, never read-then-increment in
// application code.
type FiscalCounter struct {
	Name      string    `gorm:"size:50;primary_key" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the FiscalCounter model
func (FiscalCounter) TableName() string {
	return "fiscal_counters"
}
