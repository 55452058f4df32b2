package core

import "strings"

// categoryRule pairs a set of lowercase keywords with the category they
// select. Rules are evaluated top to bottom and the first match wins;
// order matters because a merchant name can match several keyword sets
// ("AMAZON PRIME" is a subscription, not a purchase).
type categoryRule struct {
	keywords []string
	category Category
}

var categoryRules = []categoryRule{
	{[]string{"netflix", "max", "spotify", "prime"}, CategorySubscriptions},
	{[]string{"oxxo", "7 eleven", "farmacias", "amazon"}, CategoryShopping},
	{[]string{"att", "izzi", "google"}, CategoryServices},
	{[]string{"cinepolis"}, CategoryEntertainment},
	{[]string{"mercado pago", "facebook"}, CategoryPayments},
}

// Categorize assigns a category to a free-text merchant name. Matching is
// case-insensitive substring containment. Every input maps to exactly one
// category; names matching no rule fall back to CategoryOther.
func Categorize(merchantName string) Category {
	name := strings.ToLower(merchantName)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
