package billing

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"
)

// Month is a competence month: the calendar month an expense or income is
// financially attributed to. Its canonical form is the string "YYYY-MM",
// which is also how it is stored and compared (lexicographic order matches
// temporal order).
type Month struct {
	Year int
	M    time.Month
}

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParseMonth parses a canonical "YYYY-MM" string. Anything else is rejected,
// including out-of-range months like "2025-13".
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, fmt.Errorf("invalid competence month %q: want YYYY-MM", s)
	}

	var year, month int
	if _, err := fmt.Sscanf(s, "%4d-%2d", &year, &month); err != nil {
		return Month{}, fmt.Errorf("invalid competence month %q: %w", s, err)
	}

	return Month{Year: year, M: time.Month(month)}, nil
}

// MonthOf returns the competence month of a calendar date.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), M: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.M))
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.M == 0
}

// AddMonths advances the month by n, carrying into the year so the month
// component always stays within 1..12.
func (m Month) AddMonths(n int) Month {
	total := m.Year*12 + int(m.M) - 1 + n
	return Month{Year: total / 12, M: time.Month(total%12 + 1)}
}

// Before reports whether m precedes other in time.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}

	return m.M < other.M
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// Value implements driver.Valuer so the canonical string form is what lands
// in the database.
func (m Month) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for the canonical string form.
func (m *Month) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return m.UnmarshalText([]byte(v))
	case []byte:
		return m.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Month", src)
	}
}
