package stats

import (
	"time"

	"github.com/bluemoon/fees-admin/internal/model"
)

// Monthly bucketing intentionally uses fixed 30-day windows from the range
// start, not calendar months: bucket = floor((paymentDate - start) / 30d).
// The bucket boundaries therefore drift from true month boundaries over
// longer ranges. This mirrors the established product behavior; do not
// "fix" it here without a product decision. CollectionRateByMonth is the
// one exception and uses real calendar months.

const bucketWidth = 30 * 24 * time.Hour

// MonthBucket is one bar of the dashboard chart.
type MonthBucket struct {
	Name   string
	Amount float64
}

// TrendBucket splits a month's take by fee type.
type TrendBucket struct {
	Name      string
	Mandatory float64
	Voluntary float64
}

// RatePoint is a month's collection rate in percent.
type RatePoint struct {
	Name string
	Rate int
}

// rangeStart returns the start of the window covering the last `months`
// months up to now, plus the short label for each month in it.
func rangeStart(months int, now time.Time) (time.Time, []string) {
	start := now.AddDate(0, -(months - 1), 0)
	labels := make([]string, months)
	for i := 0; i < months; i++ {
		labels[i] = start.AddDate(0, i, 0).Format("Jan")
	}
	return start, labels
}

func bucketIndex(paymentDate, start, now time.Time, months int) (int, bool) {
	if paymentDate.Before(start) || paymentDate.After(now) {
		return 0, false
	}
	idx := int(paymentDate.Sub(start) / bucketWidth)
	if idx < 0 || idx >= months {
		return 0, false
	}
	return idx, true
}

// MonthlyTotals sums payment amounts into the fixed 30-day buckets.
func MonthlyTotals(payments []model.Payment, months int, now time.Time) []MonthBucket {
	start, labels := rangeStart(months, now)

	buckets := make([]MonthBucket, months)
	for i, label := range labels {
		buckets[i].Name = label
	}
	for _, p := range payments {
		if idx, ok := bucketIndex(p.PaymentDate.Time, start, now, months); ok {
			buckets[idx].Amount += p.Amount
		}
	}
	return buckets
}

// TrendsByMonth buckets payment amounts by month, split into mandatory and
// voluntary by the paying fee's type. A payment whose fee is unknown counts
// as voluntary, as the original reporting did.
func TrendsByMonth(payments []model.Payment, fees []model.Fee, months int, now time.Time) []TrendBucket {
	start, labels := rangeStart(months, now)

	mandatory := make(map[int64]bool, len(fees))
	for _, f := range fees {
		if f.Type == model.FeeMandatory {
			mandatory[f.ID] = true
		}
	}

	buckets := make([]TrendBucket, months)
	for i, label := range labels {
		buckets[i].Name = label
	}
	for _, p := range payments {
		idx, ok := bucketIndex(p.PaymentDate.Time, start, now, months)
		if !ok {
			continue
		}
		if mandatory[p.FeeID] {
			buckets[idx].Mandatory += p.Amount
		} else {
			buckets[idx].Voluntary += p.Amount
		}
	}
	return buckets
}

// CollectionRateByMonth computes, per calendar month, actual payments over
// potential payments (active households x active fees due that month).
func CollectionRateByMonth(payments []model.Payment, households []model.Household, fees []model.Fee, months int, now time.Time) []RatePoint {
	start, labels := rangeStart(months, now)

	activeHouseholds := 0
	for _, h := range households {
		if h.Active {
			activeHouseholds++
		}
	}

	points := make([]RatePoint, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

		activeFees := 0
		for _, f := range fees {
			if f.Active && !f.DueDate.Before(monthStart) && !f.DueDate.After(monthEnd) {
				activeFees++
			}
		}

		actual := 0
		for _, p := range payments {
			d := p.PaymentDate.Time
			if !d.Before(monthStart) && !d.After(monthEnd) {
				actual++
			}
		}

		points[i].Name = labels[i]
		if potential := activeHouseholds * activeFees; potential > 0 {
			points[i].Rate = roundPercent(float64(actual) / float64(potential))
		}
	}
	return points
}
