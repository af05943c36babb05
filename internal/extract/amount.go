// Package extract holds the auxiliary extractors that run independently over
// the title text: monetary amounts, funding rounds, and semantic context.
// All of them are regex/heuristic and stateless.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leguplabs/capframe/internal/model"
)

// amountRe matches a currency designator, a number, and an optional magnitude
// suffix. Designators are ordered longest-first so prefixed symbols such as
// "HK$" are consumed before the bare "$" alternative; Go's regexp tries
// alternatives in order, which is what makes "HK$2.5B" resolve to HKD rather
// than a dollar amount with a stray prefix.
var amountRe = regexp.MustCompile(
	`(?i)(US\$|HK\$|NZ\$|S\$|A\$|C\$|USD|EUR|GBP|JPY|CNY|RMB|INR|SGD|HKD|AUD|CAD|CHF|SEK|NOK|DKK|BRL|KRW|NZD|[$€£¥₹])\s?(\d+(?:,\d{3})*(?:\.\d+)?)\s?(billion|million|thousand|bn|mn|[kmb])?\b`)

// symbolCurrency resolves designators to ISO codes.
var symbolCurrency = map[string]string{
	"$": "USD", "US$": "USD", "HK$": "HKD", "S$": "SGD",
	"A$": "AUD", "C$": "CAD", "NZ$": "NZD",
	"€": "EUR", "£": "GBP", "¥": "JPY", "₹": "INR",
}

// usdRate is a static conversion table. Rates are coarse approximations: the
// USD field exists for ordering and thresholding downstream, not accounting.
var usdRate = map[string]float64{
	"USD": 1, "EUR": 1.08, "GBP": 1.27, "JPY": 0.0067, "CNY": 0.14,
	"RMB": 0.14, "INR": 0.012, "SGD": 0.74, "HKD": 0.13, "AUD": 0.66,
	"CAD": 0.73, "CHF": 1.12, "SEK": 0.095, "NOK": 0.093, "DKK": 0.145,
	"BRL": 0.18, "KRW": 0.00073, "NZD": 0.6,
}

var magnitude = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "mn": 1e6, "million": 1e6,
	"b": 1e9, "bn": 1e9, "billion": 1e9,
}

// Amounts extracts every monetary figure in the title, normalized to a USD
// equivalent alongside the raw matched substring.
func Amounts(title string) []model.Amount {
	var out []model.Amount
	for _, m := range amountRe.FindAllStringSubmatch(title, -1) {
		raw, designator, number, suffix := m[0], m[1], m[2], strings.ToLower(m[3])

		currency := strings.ToUpper(designator)
		if code, ok := symbolCurrency[designator]; ok {
			currency = code
		} else if code, ok := symbolCurrency[strings.ToUpper(designator)]; ok {
			currency = code
		}

		value, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
		if err != nil {
			continue
		}
		if mult, ok := magnitude[suffix]; ok {
			value *= mult
		}

		rate, ok := usdRate[currency]
		if !ok {
			rate = 1
		}
		out = append(out, model.Amount{
			Raw:      strings.TrimSpace(raw),
			Currency: currency,
			Value:    value,
			USD:      value * rate,
		})
	}
	return out
}
