package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AdjustmentKind represents how an adjustment value is interpreted.
// Percentage adjustments are computed against the live subtotal at read time,
// not frozen at entry time.
type AdjustmentKind int

const (
	AdjustmentPercentage AdjustmentKind = 0
	AdjustmentFixed      AdjustmentKind = 1
)

func (k AdjustmentKind) String() string {
	names := [...]string{"percentage", "fixed"}
	if int(k) < 0 || int(k) >= len(names) {
		return "percentage"
	}
	return names[k]
}

func (k AdjustmentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *AdjustmentKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = AdjustmentKind(i)
		return nil
	}
	switch str {
	case "percentage":
		*k = AdjustmentPercentage
	case "fixed":
		*k = AdjustmentFixed
	default:
		return fmt.Errorf("unknown adjustment kind: %q", str)
	}
	return nil
}

func (k AdjustmentKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *AdjustmentKind) Scan(value interface{}) error {
	if value == nil {
		*k = AdjustmentPercentage
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = AdjustmentKind(v)
	case int:
		*k = AdjustmentKind(v)
	}
	return nil
}
