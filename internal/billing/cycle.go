// Package billing attributes purchases to competence months.
//
// Immediate-settlement methods (debit, pix, cash, other) land in the calendar
// month of the purchase. Credit purchases are deferred across the card's
// statement cycle: the statement that closes on day N of month M+1 collects
// purchases up to that date and is settled in month M+1; later purchases roll
// over to M+2.
package billing

import "time"

// Resolve returns the competence month a purchase is attributed to.
//
// For credit purchases the cycle boundary is day closingDay of the month
// after the purchase, clamped to that month's last valid day (a closing day
// of 31 in a February boundary means the 28th or 29th). Purchases on or
// before the boundary belong to the following month; purchases after it to
// the month after that. The comparison is between full dates, not days of
// month, so it is correct across month and year rollovers.
//
// Resolve is total: out-of-range closing days clamp instead of failing,
// since every expense must receive a competence month.
func Resolve(purchaseDate time.Time, method Method, closingDay int) Month {
	purchase := MonthOf(purchaseDate)

	if method != MethodCredit {
		return purchase
	}

	next := purchase.AddMonths(1)
	boundary := time.Date(next.Year, next.M, clampDay(closingDay, next.Year, next.M),
		0, 0, 0, 0, purchaseDate.Location())

	day := time.Date(purchaseDate.Year(), purchaseDate.Month(), purchaseDate.Day(),
		0, 0, 0, 0, purchaseDate.Location())

	if day.After(boundary) {
		return purchase.AddMonths(2)
	}

	return next
}

// clampDay bounds a closing day to the days that exist in the given month.
func clampDay(day, year int, month time.Month) int {
	last := lastDayOf(year, month)
	if day < 1 || day > last {
		return last
	}

	return day
}

// lastDayOf returns the number of days in a month. Day zero of the next
// month normalizes to the last day of this one.
func lastDayOf(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
