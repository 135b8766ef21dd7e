package importer

import "github.com/alan-vieira/controle-familiar/internal/billing"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Valor" with "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// profile describes the column layout of one statement export format.
// Supporting a new bank layout is just another entry in the profile table.
type profile struct {
	Name       string
	Source     Source
	Method     billing.Method
	DateLayout string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must all be present for this
// profile to match a header row.
func (p profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first to avoid false matches.
var profiles = []profile{
	{
		Name:       "extrato débito/crédito",
		Source:     SourceExtrato,
		Method:     billing.MethodDebit,
		DateLayout: "02/01/2006",
		DateCol:    "Data",
		DescCol:    "Histórico",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "extrato",
		Source:     SourceExtrato,
		Method:     billing.MethodDebit,
		DateLayout: "02/01/2006",
		DateCol:    "Data",
		DescCol:    "Histórico",
		AmountMode: amountSingle,
		AmountCol:  "Valor",
	},
	{
		Name:       "fatura",
		Source:     SourceFatura,
		Method:     billing.MethodCredit,
		DateLayout: "02/01/2006",
		DateCol:    "Data",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Valor",
	},
}

// profilesFor filters the profile table by source.
func profilesFor(source Source) []profile {
	var out []profile

	for _, p := range profiles {
		if p.Source == source {
			out = append(out, p)
		}
	}

	return out
}
