package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a payment was made
type PaymentMethod int

const (
	PaymentCash    PaymentMethod = 0
	PaymentCredit  PaymentMethod = 1
	PaymentDebit   PaymentMethod = 2
	PaymentPix     PaymentMethod = 3
	PaymentVoucher PaymentMethod = 4
)

func (m PaymentMethod) String() string {
	names := [...]string{"cash", "credit", "debit", "pix", "voucher"}
	if int(m) < 0 || int(m) >= len(names) {
		return "cash"
	}
	return names[m]
}

// AllowsOverpayment reports whether the method may receive more than the
// remaining balance. Only cash does; the excess becomes change.
func (m PaymentMethod) AllowsOverpayment() bool {
	return m == PaymentCash
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentCash
	case "credit":
		*m = PaymentCredit
	case "debit":
		*m = PaymentDebit
	case "pix":
		*m = PaymentPix
	case "voucher":
		*m = PaymentVoucher
	default:
		return fmt.Errorf("unknown payment method: %q", str)
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
