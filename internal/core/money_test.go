package core

import (
	"math"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "0.00"},
		{70, "70.00"},
		{35, "35.00"},
		{100.0 / 3.0, "33.33"},
		{1.005, "1.01"},
		{0.125, "0.13"},
		{2.675, "2.68"},
		{19.999, "20.00"},
		{1234567.891, "1234567.89"},
		{math.Inf(1), "+Inf"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.out {
			t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestOrderString(t *testing.T) {
	o := Order{OrderID: 1, CustomerID: 100, Amount: 50}
	if got := o.String(); got != "Order{id=1, customerId=100, amount=50.00}" {
		t.Fatalf("unexpected string: %q", got)
	}
}
