package importer

import "fmt"

// Source identifies which kind of statement export a file came from.
type Source string

const (
	// SourceExtrato is a checking-account statement export. Outflow rows
	// become debit expenses; inflows are ignored.
	SourceExtrato Source = "extrato"
	// SourceFatura is a credit-card invoice export. Charge rows become
	// credit expenses; payments and refunds are ignored.
	SourceFatura Source = "fatura"
)

func ParseSource(raw string) (Source, error) {
	switch Source(raw) {
	case SourceExtrato:
		return SourceExtrato, nil
	case SourceFatura:
		return SourceFatura, nil
	default:
		return "", fmt.Errorf("unknown statement source: %q", raw)
	}
}
