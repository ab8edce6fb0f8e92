package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bluemoon/fees-admin/internal/model"
)

// HouseholdSearch narrows the search endpoint; zero values are omitted.
type HouseholdSearch struct {
	OwnerName string
	Address   string
	ShowAll   bool
}

// ListHouseholds fetches the household list. The response passes through the
// normalization boundary: a malformed payload comes back as an empty list,
// never an error, so list screens cannot hard-fail on backend shape faults.
func (c *Client) ListHouseholds(ctx context.Context, showAll bool) ([]model.Household, error) {
	q := url.Values{}
	q.Set("showAll", strconv.FormatBool(showAll))

	raw, err := c.doRaw(ctx, "GET", "/households", q, nil)
	if err != nil {
		c.logger.Error("list households", "error", err)
		return nil, err
	}
	return decodeHouseholdList(raw), nil
}

func (c *Client) GetHousehold(ctx context.Context, id int64) (*model.Household, error) {
	var h model.Household
	if err := c.get(ctx, fmt.Sprintf("/households/%d", id), nil, &h); err != nil {
		c.logger.Error("get household", "id", id, "error", err)
		return nil, err
	}
	return &h, nil
}

func (c *Client) CreateHousehold(ctx context.Context, h model.Household) (*model.Household, error) {
	var created model.Household
	if err := c.post(ctx, "/households", nil, h, &created); err != nil {
		c.logger.Error("create household", "error", err)
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateHousehold(ctx context.Context, id int64, h model.Household) (*model.Household, error) {
	var updated model.Household
	if err := c.put(ctx, fmt.Sprintf("/households/%d", id), nil, h, &updated); err != nil {
		c.logger.Error("update household", "id", id, "error", err)
		return nil, err
	}
	return &updated, nil
}

// DeleteHousehold deactivates an active household; the backend hard-deletes
// one that is already inactive. Which happens is decided entirely by the
// household's current active flag.
func (c *Client) DeleteHousehold(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/households/%d", id)); err != nil {
		c.logger.Error("delete household", "id", id, "error", err)
		return err
	}
	return nil
}

func (c *Client) ActivateHousehold(ctx context.Context, id int64) error {
	if err := c.put(ctx, fmt.Sprintf("/households/%d/activate", id), nil, nil, nil); err != nil {
		c.logger.Error("activate household", "id", id, "error", err)
		return err
	}
	return nil
}

// SearchHouseholds queries by owner name or address (the backend applies
// whichever parameter is present).
func (c *Client) SearchHouseholds(ctx context.Context, search HouseholdSearch) ([]model.Household, error) {
	q := url.Values{}
	if search.OwnerName != "" {
		q.Set("ownerName", search.OwnerName)
	}
	if search.Address != "" {
		q.Set("address", search.Address)
	}
	if search.ShowAll {
		q.Set("showAll", "true")
	}

	var list []model.Household
	if err := c.get(ctx, "/households/search", q, &list); err != nil {
		c.logger.Error("search households", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) HouseholdPayments(ctx context.Context, id int64) ([]model.Payment, error) {
	var list []model.Payment
	if err := c.get(ctx, fmt.Sprintf("/households/%d/payments", id), nil, &list); err != nil {
		c.logger.Error("household payments", "id", id, "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) HouseholdStatistics(ctx context.Context, id int64) (*model.HouseholdStatistics, error) {
	var stats model.HouseholdStatistics
	if err := c.get(ctx, fmt.Sprintf("/households/%d/statistics", id), nil, &stats); err != nil {
		c.logger.Error("household statistics", "id", id, "error", err)
		return nil, err
	}
	return &stats, nil
}
