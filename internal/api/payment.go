package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bluemoon/fees-admin/internal/model"
)

// PaymentFilters narrows the payment list; nil fields are omitted.
type PaymentFilters struct {
	Verified *bool
}

// paymentBody is the nested shape the backend expects for create and
// update: entity references, not flat foreign keys.
type paymentBody struct {
	Household  entityRef  `json:"household"`
	Fee        entityRef  `json:"fee"`
	Amount     float64    `json:"amount"`
	AmountPaid float64    `json:"amountPaid"`
	Date       model.Date `json:"paymentDate"`
	Verified   bool       `json:"verified"`
	Notes      string     `json:"notes"`
}

type entityRef struct {
	ID int64 `json:"id"`
}

func newPaymentBody(in model.PaymentInput) paymentBody {
	amountPaid := in.AmountPaid
	if amountPaid == 0 {
		amountPaid = in.Amount
	}
	return paymentBody{
		Household:  entityRef{ID: in.HouseholdID},
		Fee:        entityRef{ID: in.FeeID},
		Amount:     in.Amount,
		AmountPaid: amountPaid,
		Date:       in.PaymentDate,
		Verified:   in.Verified,
		Notes:      in.Notes,
	}
}

func (c *Client) ListPayments(ctx context.Context, filters PaymentFilters) ([]model.Payment, error) {
	q := url.Values{}
	if filters.Verified != nil {
		q.Set("verified", strconv.FormatBool(*filters.Verified))
	}

	var list []model.Payment
	if err := c.get(ctx, "/payments", q, &list); err != nil {
		c.logger.Error("list payments", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) GetPayment(ctx context.Context, id int64) (*model.Payment, error) {
	var p model.Payment
	if err := c.get(ctx, fmt.Sprintf("/payments/%d", id), nil, &p); err != nil {
		c.logger.Error("get payment", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePayment(ctx context.Context, in model.PaymentInput) (*model.Payment, error) {
	var created model.Payment
	if err := c.post(ctx, "/payments", nil, newPaymentBody(in), &created); err != nil {
		c.logger.Error("create payment", "household_id", in.HouseholdID, "fee_id", in.FeeID, "error", err)
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id int64, in model.PaymentInput) (*model.Payment, error) {
	var updated model.Payment
	if err := c.put(ctx, fmt.Sprintf("/payments/%d", id), nil, newPaymentBody(in), &updated); err != nil {
		c.logger.Error("update payment", "id", id, "error", err)
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/payments/%d", id)); err != nil {
		c.logger.Error("delete payment", "id", id, "error", err)
		return err
	}
	return nil
}

// SetPaymentVerified flips verification through the dedicated endpoints;
// it is independent of payment editing.
func (c *Client) SetPaymentVerified(ctx context.Context, id int64, verified bool) error {
	action := "unverify"
	if verified {
		action = "verify"
	}
	if err := c.put(ctx, fmt.Sprintf("/payments/%d/%s", id, action), nil, nil, nil); err != nil {
		c.logger.Error("set payment verified", "id", id, "verified", verified, "error", err)
		return err
	}
	return nil
}

func (c *Client) PaymentsByHousehold(ctx context.Context, householdID int64) ([]model.Payment, error) {
	var list []model.Payment
	if err := c.get(ctx, fmt.Sprintf("/payments/household/%d", householdID), nil, &list); err != nil {
		c.logger.Error("payments by household", "household_id", householdID, "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) PaymentsByFee(ctx context.Context, feeID int64) ([]model.Payment, error) {
	var list []model.Payment
	if err := c.get(ctx, fmt.Sprintf("/payments/fee/%d", feeID), nil, &list); err != nil {
		c.logger.Error("payments by fee", "fee_id", feeID, "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) PaymentsByDateRange(ctx context.Context, start, end model.Date) ([]model.Payment, error) {
	q := url.Values{}
	q.Set("startDate", start.Format("2006-01-02"))
	q.Set("endDate", end.Format("2006-01-02"))

	var list []model.Payment
	if err := c.get(ctx, "/payments/date-range", q, &list); err != nil {
		c.logger.Error("payments by date range", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) UnverifiedPayments(ctx context.Context) ([]model.Payment, error) {
	var list []model.Payment
	if err := c.get(ctx, "/payments/unverified", nil, &list); err != nil {
		c.logger.Error("unverified payments", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) PaymentByHouseholdAndFee(ctx context.Context, householdID, feeID int64) (*model.Payment, error) {
	var p model.Payment
	path := fmt.Sprintf("/payments/household/%d/fee/%d", householdID, feeID)
	if err := c.get(ctx, path, nil, &p); err != nil {
		c.logger.Error("payment by household and fee", "household_id", householdID, "fee_id", feeID, "error", err)
		return nil, err
	}
	return &p, nil
}

func (c *Client) TotalPaymentsByHousehold(ctx context.Context, householdID int64) (float64, error) {
	var total float64
	path := fmt.Sprintf("/payments/statistics/household/%d/total", householdID)
	if err := c.get(ctx, path, nil, &total); err != nil {
		c.logger.Error("total payments by household", "household_id", householdID, "error", err)
		return 0, err
	}
	return total, nil
}

func (c *Client) TotalPaymentsByFee(ctx context.Context, feeID int64) (float64, error) {
	var total float64
	path := fmt.Sprintf("/payments/statistics/fee/%d/total", feeID)
	if err := c.get(ctx, path, nil, &total); err != nil {
		c.logger.Error("total payments by fee", "fee_id", feeID, "error", err)
		return 0, err
	}
	return total, nil
}

func (c *Client) TotalPaymentsByDateRange(ctx context.Context, start, end model.Date) (float64, error) {
	q := url.Values{}
	q.Set("startDate", start.Format("2006-01-02"))
	q.Set("endDate", end.Format("2006-01-02"))

	var total float64
	if err := c.get(ctx, "/payments/statistics/date-range/total", q, &total); err != nil {
		c.logger.Error("total payments by date range", "error", err)
		return 0, err
	}
	return total, nil
}
