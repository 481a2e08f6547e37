package ingredient

import "testing"

func TestNewQuantityStoresMilliUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount float64
		want   int
	}{
		{"whole", 2, 2000},
		{"decimal", 1.5, 1500},
		{"three decimals", 0.125, 125},
		{"rounds", 0.3333, 333},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := NewQuantity(tt.amount)
			if q.Numerator != tt.want {
				t.Fatalf("NewQuantity(%v).Numerator = %d, want %d", tt.amount, q.Numerator, tt.want)
			}
			if q.Denominator != MilliDenominator {
				t.Fatalf("NewQuantity(%v).Denominator = %d, want %d", tt.amount, q.Denominator, MilliDenominator)
			}
		})
	}
}

func TestScaleDoesNotCompound(t *testing.T) {
	t.Parallel()

	base := NewQuantity(2)

	combined := base.Scale(1.5 * 2)
	direct := base.Scale(3)
	if combined.Numerator != direct.Numerator {
		t.Fatalf("scale by combined factor = %d, direct = %d", combined.Numerator, direct.Numerator)
	}

	// Scaling is always applied to the stored base, so a third of a third of
	// the base and a single scale by one ninth agree to stored precision.
	ninth := base.Scale(1.0 / 9.0)
	if ninth.Denominator != MilliDenominator {
		t.Fatalf("scale changed denominator to %d", ninth.Denominator)
	}
	if ninth.Numerator != 222 {
		t.Fatalf("scale by 1/9 numerator = %d, want 222", ninth.Numerator)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole number", 6, "6"},
		{"half", 0.5, "0.50"},
		{"quarter", 2.25, "2.25"},
		{"milli precision", 0.125, "0.13"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewQuantity(tt.amount).Format(); got != tt.want {
				t.Fatalf("Format(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestValueGuardsZeroDenominator(t *testing.T) {
	t.Parallel()

	q := Quantity{Numerator: 500, Denominator: 0}
	if got := q.Value(); got != 0 {
		t.Fatalf("Value with zero denominator = %v, want 0", got)
	}
}
