package handler

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bluemoon/fees-admin/internal/api"
	"github.com/bluemoon/fees-admin/internal/model"
	"github.com/bluemoon/fees-admin/internal/stats"
)

const dashboardMonths = 6

func (v *View) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	households, fees, payments, err := v.fetchAll(r)
	if err != nil {
		v.fail(w, r, err, "failed to load dashboard data")
		return
	}

	data := v.baseData("Dashboard — BlueMoon Fees")
	data["Summary"] = stats.Summarize(activeOnly(households), activeFees(fees), payments)
	data["Monthly"] = stats.MonthlyTotals(payments, dashboardMonths, time.Now())
	data["Recent"] = stats.RecentPayments(payments, 5)
	v.render(w, "dashboard.html", data)
}

// fetchAll pulls the three core collections in parallel. Each screen that
// aggregates across entities starts here.
func (v *View) fetchAll(r *http.Request) ([]model.Household, []model.Fee, []model.Payment, error) {
	var (
		households []model.Household
		fees       []model.Fee
		payments   []model.Payment
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		households, err = v.api.ListHouseholds(ctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		fees, err = v.api.ListFees(ctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = v.api.ListPayments(ctx, api.PaymentFilters{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return households, fees, payments, nil
}

func activeOnly(households []model.Household) []model.Household {
	kept := households[:0:0]
	for _, h := range households {
		if h.Active {
			kept = append(kept, h)
		}
	}
	return kept
}

func activeFees(fees []model.Fee) []model.Fee {
	kept := fees[:0:0]
	for _, f := range fees {
		if f.Active {
			kept = append(kept, f)
		}
	}
	return kept
}
