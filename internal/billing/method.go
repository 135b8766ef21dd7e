package billing

import "strings"

// Method represents how an expense was paid. Credit is the only method that
// defers attribution to a later competence month; everything else settles in
// the month of purchase.
type Method string

const (
	MethodCredit Method = "credito"
	MethodDebit  Method = "debito"
	MethodPix    Method = "pix"
	MethodCash   Method = "dinheiro"
	MethodOther  Method = "outros"
)

var creditKeywords = []string{"credito", "crédito", "cartao", "cartão"}

var debitKeywords = []string{"debito", "débito"}

// NormalizeMethod classifies free-text payment method input into a Method.
// Matching is deliberately permissive: any text mentioning a credit card
// counts as credit, and anything unrecognized falls back to MethodOther.
func NormalizeMethod(raw string) Method {
	t := strings.ToLower(strings.TrimSpace(raw))

	for _, kw := range creditKeywords {
		if strings.Contains(t, kw) {
			return MethodCredit
		}
	}

	for _, kw := range debitKeywords {
		if strings.Contains(t, kw) {
			return MethodDebit
		}
	}

	switch t {
	case "pix":
		return MethodPix
	case "dinheiro":
		return MethodCash
	case "outros":
		return MethodOther
	}

	return MethodOther
}

// Valid reports whether m is one of the closed set of methods.
func (m Method) Valid() bool {
	switch m {
	case MethodCredit, MethodDebit, MethodPix, MethodCash, MethodOther:
		return true
	}

	return false
}
