package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bluemoon/fees-admin/internal/model"
	"github.com/bluemoon/fees-admin/internal/stats"
)

func (v *View) StatisticsPage(w http.ResponseWriter, r *http.Request) {
	data := v.baseData("Statistics — BlueMoon Fees")
	data["Months"] = monthsParam(r)
	data["FeeType"] = r.URL.Query().Get("type")
	v.render(w, "statistics.html", data)
}

// StatisticsPanel recomputes every chart series for the selected range and
// fee type. Raw collections come from the backend; all aggregation is local.
func (v *View) StatisticsPanel(w http.ResponseWriter, r *http.Request) {
	households, fees, payments, err := v.fetchAll(r)
	if err != nil {
		v.fail(w, r, err, "failed to load statistics")
		return
	}

	months := monthsParam(r)
	feeType := r.URL.Query().Get("type")
	now := time.Now()

	scoped := scopePayments(payments, fees, feeType)

	v.renderPartial(w, "statistics-panel", map[string]any{
		"Months":    months,
		"FeeType":   feeType,
		"Summary":   stats.Summarize(activeOnly(households), activeFees(fees), payments),
		"Monthly":   stats.MonthlyTotals(scoped, months, now),
		"Trends":    stats.TrendsByMonth(payments, fees, months, now),
		"Rates":     stats.CollectionRateByMonth(payments, households, fees, months, now),
		"ByFee":     stats.PaymentsByFee(scoped, fees),
		"TopPayers": stats.TopPayingHouseholds(households, scoped, 5),
	})
}

// scopePayments keeps only payments toward fees of the given type. Empty
// type means everything.
func scopePayments(payments []model.Payment, fees []model.Fee, feeType string) []model.Payment {
	if feeType == "" {
		return payments
	}

	wanted := make(map[int64]bool, len(fees))
	for _, f := range fees {
		if string(f.Type) == feeType {
			wanted[f.ID] = true
		}
	}

	scoped := payments[:0:0]
	for _, p := range payments {
		if wanted[p.FeeID] {
			scoped = append(scoped, p)
		}
	}
	return scoped
}

func monthsParam(r *http.Request) int {
	switch n, _ := strconv.Atoi(r.URL.Query().Get("months")); n {
	case 3, 6, 12:
		return n
	default:
		return 6
	}
}
