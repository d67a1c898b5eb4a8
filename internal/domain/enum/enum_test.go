package enum

import (
	"encoding/json"
	"testing"
)

func TestPaymentMethod_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PaymentMethod
		wantErr bool
	}{
		{"cash", `"cash"`, PaymentCash, false},
		{"pix", `"pix"`, PaymentPix, false},
		{"voucher", `"voucher"`, PaymentVoucher, false},
		{"numeric form", `2`, PaymentDebit, false},
		{"unknown name rejected", `"cheque"`, 0, true},
		{"empty string rejected", `""`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m PaymentMethod
			err := json.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) accepted, parsed as %s", tt.input, m)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if m != tt.want {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, m, tt.want)
			}
		})
	}
}

func TestAdjustmentKind_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AdjustmentKind
		wantErr bool
	}{
		{"percentage", `"percentage"`, AdjustmentPercentage, false},
		{"fixed", `"fixed"`, AdjustmentFixed, false},
		{"numeric form", `1`, AdjustmentFixed, false},
		{"unknown name rejected", `"flat"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k AdjustmentKind
			err := json.Unmarshal([]byte(tt.input), &k)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) accepted, parsed as %s", tt.input, k)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if k != tt.want {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, k, tt.want)
			}
		})
	}
}
