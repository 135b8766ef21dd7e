package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alan-vieira/controle-familiar/internal/billing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	type testCase struct {
		name       string
		purchase   time.Time
		method     billing.Method
		closingDay int
		want       string
	}

	tests := []testCase{
		{
			name:       "DebitUsesPurchaseMonth",
			purchase:   date(2025, time.March, 25),
			method:     billing.MethodDebit,
			closingDay: 10,
			want:       "2025-03",
		},
		{
			name:       "PixUsesPurchaseMonth",
			purchase:   date(2025, time.December, 31),
			method:     billing.MethodPix,
			closingDay: 1,
			want:       "2025-12",
		},
		{
			name:       "CashIgnoresClosingDay",
			purchase:   date(2025, time.June, 2),
			method:     billing.MethodCash,
			closingDay: 31,
			want:       "2025-06",
		},
		{
			name:       "OtherUsesPurchaseMonth",
			purchase:   date(2025, time.June, 2),
			method:     billing.MethodOther,
			closingDay: 15,
			want:       "2025-06",
		},
		{
			name:       "CreditBeforeBoundary",
			purchase:   date(2025, time.March, 9),
			method:     billing.MethodCredit,
			closingDay: 10,
			want:       "2025-04",
		},
		{
			name:       "CreditMidMonthStillBeforeNextMonthBoundary",
			// 2025-03-15 is after day 10, but the boundary is the full date
			// 2025-04-10, so the purchase still precedes it.
			purchase:   date(2025, time.March, 15),
			method:     billing.MethodCredit,
			closingDay: 10,
			want:       "2025-04",
		},
		{
			name:       "CreditOnBoundaryDay",
			purchase:   date(2025, time.March, 10),
			method:     billing.MethodCredit,
			closingDay: 10,
			want:       "2025-04",
		},
		{
			name:       "CreditDecemberRollsIntoNextYear",
			purchase:   date(2025, time.December, 20),
			method:     billing.MethodCredit,
			closingDay: 5,
			want:       "2026-01",
		},
		{
			name:       "CreditJanuaryBoundaryInFebruaryClampsDay31",
			purchase:   date(2025, time.January, 30),
			method:     billing.MethodCredit,
			closingDay: 31,
			want:       "2025-02",
		},
		{
			name:       "CreditLeapFebruaryClamp",
			purchase:   date(2024, time.January, 31),
			method:     billing.MethodCredit,
			closingDay: 30,
			want:       "2024-02",
		},
		{
			name:       "CreditClosingDayZeroClampsToLastDay",
			purchase:   date(2025, time.May, 12),
			method:     billing.MethodCredit,
			closingDay: 0,
			want:       "2025-06",
		},
		{
			name:       "CreditClosingDayOutOfRangeClamps",
			purchase:   date(2025, time.May, 12),
			method:     billing.MethodCredit,
			closingDay: 45,
			want:       "2025-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.Resolve(tt.purchase, tt.method, tt.closingDay)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

// Resolve must return an in-range month for every combination of date,
// method and closing day, including closing days no month can hold.
func TestResolve_AlwaysInCalendarBounds(t *testing.T) {
	methods := []billing.Method{
		billing.MethodCredit,
		billing.MethodDebit,
		billing.MethodPix,
		billing.MethodCash,
		billing.MethodOther,
	}

	for day := date(2024, time.January, 1); day.Year() < 2026; day = day.AddDate(0, 0, 7) {
		for _, method := range methods {
			for _, closing := range []int{-3, 0, 1, 10, 15, 28, 29, 30, 31, 32, 60} {
				got := billing.Resolve(day, method, closing)
				assert.GreaterOrEqual(t, int(got.M), 1,
					"date=%s method=%s closing=%d", day.Format(time.DateOnly), method, closing)
				assert.LessOrEqual(t, int(got.M), 12,
					"date=%s method=%s closing=%d", day.Format(time.DateOnly), method, closing)
			}
		}
	}
}

func TestResolve_NonCreditIndependentOfClosingDay(t *testing.T) {
	day := date(2025, time.August, 17)

	for _, closing := range []int{-1, 1, 15, 31, 99} {
		got := billing.Resolve(day, billing.MethodDebit, closing)
		assert.Equal(t, "2025-08", got.String())
	}
}
