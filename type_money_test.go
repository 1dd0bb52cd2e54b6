package rebalance

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "$0.00"},
		{value: 1234.56, want: "$1,234.56"},
		{value: -231.4, want: "-$231.40"},
		{value: 0.005, want: "$0.01"},
	}
	for _, tc := range testCases {
		if got := M(tc.value).String(); got != tc.want {
			t.Errorf("M(%v).String() = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := M(0).SignedString(); got != "-" {
		t.Errorf("M(0).SignedString() = %q, want \"-\"", got)
	}
	if got := M(150).SignedString(); got != "+$150.00" {
		t.Errorf("M(150).SignedString() = %q, want \"+$150.00\"", got)
	}
	if got := M(-231.4).SignedString(); got != "-$231.40" {
		t.Errorf("M(-231.4).SignedString() = %q, want \"-$231.40\"", got)
	}
}

func TestMoney_DivPrice(t *testing.T) {
	if got := M(8000).DivPrice(M(200)); !got.Equal(Q(40)) {
		t.Errorf("$8,000 / $200 = %s shares, want 40", got)
	}
}

func TestQuantity_RoundToLot(t *testing.T) {
	testCases := []struct {
		name   string
		shares Quantity
		lot    Quantity
		want   Quantity
	}{
		{name: "below half rounds down", shares: Q(1.25), lot: Q(1), want: Q(1)},
		{name: "half rounds away from zero", shares: Q(2.5), lot: Q(1), want: Q(3)},
		{name: "negative half rounds away from zero", shares: Q(-2.5), lot: Q(1), want: Q(-3)},
		{name: "lot of ten", shares: Q(25), lot: Q(10), want: Q(30)},
		{name: "fractional lot", shares: Q(1.3), lot: Q(0.5), want: Q(1.5)},
		{name: "zero lot keeps whole shares", shares: Q(1.6), lot: Q(0), want: Q(2)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.shares.RoundToLot(tc.lot); !got.Equal(tc.want) {
				t.Errorf("RoundToLot(%s, %s) = %s, want %s", tc.shares, tc.lot, got, tc.want)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	if !W(0.6).Add(W(0.4)).IsWhole() {
		t.Error("0.6 + 0.4 is not whole")
	}
	if W(0.9).IsWhole() {
		t.Error("0.9 reported as whole")
	}
	if !W(1.0000005).IsWhole() {
		t.Error("1 + 5e-7 rejected, want within epsilon")
	}
	if got := W(0.6).Of(M(20000)); !got.Equal(M(12000)) {
		t.Errorf("60%% of $20,000 = %s, want $12,000.00", got)
	}
	if got := W(0.6).String(); got != "60.00%" {
		t.Errorf("W(0.6).String() = %q, want \"60.00%%\"", got)
	}
}
