package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	enc "github.com/alan-vieira/controle-familiar/internal/encoding"
)

// Row is one statement line that should become an expense. The parser keeps
// amounts positive; the sign convention of the source decides which rows
// survive.
type Row struct {
	PurchaseDate time.Time
	Description  string
	Amount       int64
	Method       billing.Method
}

// Parser reads semicolon-separated statement exports and produces expense
// rows. It auto-detects which layout is being used by matching column
// headers against the known profiles for the source.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(source Source, r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	prof, colMap, headerIdx := detectProfile(source, rows)
	if prof == nil {
		return nil, fmt.Errorf("no known %s layout found in file header", source)
	}

	return parseRows(prof, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile of the
// source. Returns the matched profile, column index map and header row index.
func detectProfile(source Source, rows [][]string) (*profile, colIndex, int) {
	candidates := profilesFor(source)

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts expense rows using the matched profile. headerRowNum is
// the 0-based index of the header in the original file, for error messages.
func parseRows(p *profile, cols colIndex, rows [][]string, headerRowNum int) ([]Row, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var out []Row

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		date, ok := parseDate(p.DateLayout, row, dateIdx)
		if !ok {
			// Footer, totals or blank line.
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := parseRowAmount(p, cols, row)
		if !ok {
			continue
		}

		out = append(out, Row{
			PurchaseDate: date,
			Description:  desc,
			Amount:       amount,
			Method:       p.Method,
		})
	}

	return out, nil
}

func parseDate(layout string, row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseRowAmount extracts a positive outflow amount from a row, or reports
// that the row is not an expense.
func parseRowAmount(p *profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(p, row, cols[p.AmountCol])
	case amountSplit:
		return parseDebitAmount(row, cols[p.DebitCol])
	}

	return 0, false
}

// parseSingleAmount handles one signed column. On a card invoice charges are
// positive; on an account statement outflows are negative.
func parseSingleAmount(p *profile, row []string, idx int) (int64, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	cents, err := parseBRLAmount(s)
	if err != nil || cents == 0 {
		return 0, false
	}

	if p.Source == SourceFatura {
		if cents < 0 {
			// Payment or refund line.
			return 0, false
		}

		return cents, true
	}

	if cents > 0 {
		// Account inflow, not an expense.
		return 0, false
	}

	return -cents, true
}

// parseDebitAmount handles the split layout; only the debit column yields
// expenses.
func parseDebitAmount(row []string, debitIdx int) (int64, bool) {
	s := cellValue(row, debitIdx)
	if s == "" {
		return 0, false
	}

	cents, err := parseBRLAmount(s)
	if err != nil || cents == 0 {
		return 0, false
	}

	if cents < 0 {
		cents = -cents
	}

	return cents, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
