package ingredient

import "testing"

func TestParseLeadingAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		raw        string
		wantAmount float64
		wantUnit   string
		wantItem   string
		wantNotes  string
	}{
		{"amount unit item", "2 cups flour", 2, "cups", "flour", ""},
		{"decimal amount", "1.5 tbsp olive oil", 1.5, "tbsp", "olive oil", ""},
		{"amount without unit", "3 eggs", 3, "", "eggs", ""},
		{"with notes", "2 cups flour (sifted)", 2, "cups", "flour", "sifted"},
		{"no space before unit", "200g butter", 200, "g", "butter", ""},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := Parse(tt.raw)
			if line.Amount == nil {
				t.Fatalf("Parse(%q) returned nil amount", tt.raw)
			}
			if got := line.Amount.Value(); got != tt.wantAmount {
				t.Fatalf("Parse(%q) amount = %v, want %v", tt.raw, got, tt.wantAmount)
			}
			if line.Unit != tt.wantUnit {
				t.Fatalf("Parse(%q) unit = %q, want %q", tt.raw, line.Unit, tt.wantUnit)
			}
			if line.Item != tt.wantItem {
				t.Fatalf("Parse(%q) item = %q, want %q", tt.raw, line.Item, tt.wantItem)
			}
			if line.Notes != tt.wantNotes {
				t.Fatalf("Parse(%q) notes = %q, want %q", tt.raw, line.Notes, tt.wantNotes)
			}
		})
	}
}

func TestParseFallbacks(t *testing.T) {
	t.Parallel()

	line := Parse("salt to taste")
	if line.Amount != nil || line.Unit != "" || line.Notes != "" {
		t.Fatalf("expected bare item, got %+v", line)
	}
	if line.Item != "salt to taste" {
		t.Fatalf("item = %q, want full line", line.Item)
	}

	line = Parse("fresh basil (a handful)")
	if line.Amount != nil {
		t.Fatalf("expected nil amount, got %+v", line.Amount)
	}
	if line.Item != "fresh basil" || line.Notes != "a handful" {
		t.Fatalf("unexpected fallback parse: %+v", line)
	}

	line = Parse("")
	if line.Item != "" || line.Amount != nil {
		t.Fatalf("expected empty line result, got %+v", line)
	}
}

func TestBuildOmitsAbsentFields(t *testing.T) {
	t.Parallel()

	quantity := NewQuantity(2)
	cases := []struct {
		name string
		line Line
		want string
	}{
		{"full line", Line{Amount: &quantity, Unit: "cups", Item: "flour", Notes: "sifted"}, "2 cups flour (sifted)"},
		{"no unit", Line{Amount: &quantity, Item: "eggs"}, "2 eggs"},
		{"item only", Line{Item: "salt to taste"}, "salt to taste"},
		{"item with notes", Line{Item: "basil", Notes: "fresh"}, "basil (fresh)"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Build(tt.line); got != tt.want {
				t.Fatalf("Build(%+v) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseBuildRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"2 cups flour",
		"1.5 tbsp olive oil",
		"3 eggs",
		"2 cups flour (sifted)",
		"0.25 tsp salt",
	}

	for _, raw := range inputs {
		first := Parse(raw)
		rebuilt := Build(first)
		second := Parse(rebuilt)

		if first.Amount == nil || second.Amount == nil {
			t.Fatalf("round trip of %q lost the amount (%+v -> %q -> %+v)", raw, first, rebuilt, second)
		}
		if first.Amount.Numerator != second.Amount.Numerator {
			t.Fatalf("round trip of %q changed amount: %d -> %d", raw, first.Amount.Numerator, second.Amount.Numerator)
		}
		if first.Unit != second.Unit || first.Item != second.Item {
			t.Fatalf("round trip of %q changed structure: %+v -> %+v", raw, first, second)
		}
	}
}
