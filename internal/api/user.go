package api

import (
	"context"
	"fmt"

	"github.com/bluemoon/fees-admin/internal/model"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var list []model.User
	if err := c.get(ctx, "/users", nil, &list); err != nil {
		c.logger.Error("list users", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		c.logger.Error("get user", "id", id, "error", err)
		return nil, err
	}
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	var created model.User
	if err := c.post(ctx, "/users", nil, u, &created); err != nil {
		c.logger.Error("create user", "error", err)
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, u model.User) (*model.User, error) {
	var updated model.User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), nil, u, &updated); err != nil {
		c.logger.Error("update user", "id", id, "error", err)
		return nil, err
	}
	return &updated, nil
}

func (c *Client) SetUserRole(ctx context.Context, id int64, isAdmin bool) error {
	body := map[string]bool{"isAdmin": isAdmin}
	if err := c.put(ctx, fmt.Sprintf("/users/%d/role", id), nil, body, nil); err != nil {
		c.logger.Error("set user role", "id", id, "is_admin", isAdmin, "error", err)
		return err
	}
	return nil
}

func (c *Client) SetUserStatus(ctx context.Context, id int64, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	if err := c.put(ctx, fmt.Sprintf("/users/%d/status", id), nil, body, nil); err != nil {
		c.logger.Error("set user status", "id", id, "enabled", enabled, "error", err)
		return err
	}
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/users/%d", id)); err != nil {
		c.logger.Error("delete user", "id", id, "error", err)
		return err
	}
	return nil
}
