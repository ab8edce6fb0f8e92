package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bluemoon/fees-admin/internal/model"
)

// ListFees fetches the fee list. showAll=true is forced regardless of any
// caller-supplied filters so inactive and pending fees stay visible in list
// views; visibility filtering happens client-side on the fee screen.
func (c *Client) ListFees(ctx context.Context, filters url.Values) ([]model.Fee, error) {
	q := url.Values{}
	for key, vals := range filters {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	q.Set("showAll", "true")

	var list []model.Fee
	if err := c.get(ctx, "/fees", q, &list); err != nil {
		c.logger.Error("list fees", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) GetFee(ctx context.Context, id int64) (*model.Fee, error) {
	var f model.Fee
	if err := c.get(ctx, fmt.Sprintf("/fees/%d", id), nil, &f); err != nil {
		c.logger.Error("get fee", "id", id, "error", err)
		return nil, err
	}
	return &f, nil
}

func (c *Client) CreateFee(ctx context.Context, f model.Fee) (*model.Fee, error) {
	var created model.Fee
	if err := c.post(ctx, "/fees", nil, f, &created); err != nil {
		c.logger.Error("create fee", "error", err)
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateFee(ctx context.Context, id int64, f model.Fee) (*model.Fee, error) {
	var updated model.Fee
	if err := c.put(ctx, fmt.Sprintf("/fees/%d", id), nil, f, &updated); err != nil {
		c.logger.Error("update fee", "id", id, "error", err)
		return nil, err
	}
	return &updated, nil
}

// SetFeeStatus toggles the active flag in place.
func (c *Client) SetFeeStatus(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"active": active}
	if err := c.patch(ctx, fmt.Sprintf("/fees/%d/status", id), body, nil); err != nil {
		c.logger.Error("set fee status", "id", id, "active", active, "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteFee(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/fees/%d", id)); err != nil {
		c.logger.Error("delete fee", "id", id, "error", err)
		return err
	}
	return nil
}

func (c *Client) FeesByType(ctx context.Context, feeType model.FeeType) ([]model.Fee, error) {
	var list []model.Fee
	if err := c.get(ctx, fmt.Sprintf("/fees/type/%s", feeType), nil, &list); err != nil {
		c.logger.Error("fees by type", "type", feeType, "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) FeeStatistics(ctx context.Context, id int64) (*model.FeeStatistics, error) {
	var stats model.FeeStatistics
	if err := c.get(ctx, fmt.Sprintf("/fees/%d/statistics", id), nil, &stats); err != nil {
		c.logger.Error("fee statistics", "id", id, "error", err)
		return nil, err
	}
	return &stats, nil
}
