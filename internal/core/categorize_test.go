package core

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		merchant string
		want     Category
	}{
		{"netflix lowercase", "netflix", CategorySubscriptions},
		{"netflix uppercase", "NETFLIX", CategorySubscriptions},
		{"netflix embedded", "PAGO NETFLIX MX", CategorySubscriptions},
		{"max", "MAX", CategorySubscriptions},
		{"spotify", "SPOTIFY", CategorySubscriptions},
		{"oxxo", "OXXO", CategoryShopping},
		{"seven eleven", "7 ELEVEN", CategoryShopping},
		{"farmacias", "FARMACIAS GUADALAJARA", CategoryShopping},
		{"att", "MI ATT", CategoryServices},
		{"izzi", "IZZI", CategoryServices},
		{"google", "GOOGLE", CategoryServices},
		{"cinepolis", "CINEPOLIS", CategoryEntertainment},
		{"mercado pago", "MERCADO PAGO", CategoryPayments},
		{"facebook", "FACEBOOK", CategoryPayments},
		{"unknown merchant", "MELIMAS", CategoryOther},
		{"empty name", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.merchant); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.merchant, got, tt.want)
			}
		})
	}
}

// Rule order decides ambiguous names: "AMAZON PRIME" contains both "prime"
// (subscriptions) and "amazon" (shopping), and the subscription rule is
// checked first.
func TestCategorizePriorityOrder(t *testing.T) {
	tests := []struct {
		merchant string
		want     Category
	}{
		{"AMAZON PRIME", CategorySubscriptions},
		{"AMAZON", CategoryShopping},
		{"NETFLIX OXXO", CategorySubscriptions},
		{"OXXO GOOGLE", CategoryShopping},
	}
	for _, tt := range tests {
		if got := Categorize(tt.merchant); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.merchant, got, tt.want)
		}
	}
}
