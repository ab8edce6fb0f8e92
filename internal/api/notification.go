package api

import (
	"context"
	"fmt"

	"github.com/bluemoon/fees-admin/internal/model"
)

// UnreadNotifications returns the notifications for the bell menu.
// Notifications are never created from this side; the backend produces them
// and this client only reads and marks.
func (c *Client) UnreadNotifications(ctx context.Context) ([]model.Notification, error) {
	var list []model.Notification
	if err := c.get(ctx, "/notifications", nil, &list); err != nil {
		c.logger.Error("unread notifications", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Client) UserNotifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	var list []model.Notification
	if err := c.get(ctx, fmt.Sprintf("/notifications/user/%d", userID), nil, &list); err != nil {
		c.logger.Error("user notifications", "user_id", userID, "error", err)
		return nil, err
	}
	return list, nil
}

// UnreadNotificationCount returns the badge count. The backend answers with
// a bare number.
func (c *Client) UnreadNotificationCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.get(ctx, "/notifications/unread/count", nil, &count); err != nil {
		c.logger.Error("unread notification count", "error", err)
		return 0, err
	}
	return count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	if err := c.put(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil, nil); err != nil {
		c.logger.Error("mark notification read", "id", id, "error", err)
		return err
	}
	return nil
}
