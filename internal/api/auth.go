package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bluemoon/fees-admin/internal/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// AuthResponse is the backend's answer to login and register.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// Login authenticates against the backend and, on success, populates the
// session with the token and profile.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", nil, loginRequest{Username: username, Password: password}, &resp); err != nil {
		c.logger.Error("login", "username", username, "error", err)
		return nil, err
	}
	c.storeSession(resp)
	return &resp, nil
}

// Register creates an account and signs the new operator in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", nil, req, &resp); err != nil {
		c.logger.Error("register", "username", req.Username, "error", err)
		return nil, err
	}
	c.storeSession(resp)
	return &resp, nil
}

// ChangePassword changes a password. The backend takes these as query
// parameters, not a body.
func (c *Client) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))
	q.Set("oldPassword", oldPassword)
	q.Set("newPassword", newPassword)
	if err := c.post(ctx, "/auth/change-password", q, nil, nil); err != nil {
		c.logger.Error("change password", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (c *Client) storeSession(resp AuthResponse) {
	c.session.SetToken(resp.Token)
	display := resp.FullName
	if display == "" {
		display = resp.Username
	}
	c.session.SetProfile(model.UserProfile{
		UserID:      resp.UserID,
		Username:    resp.Username,
		Role:        resp.Role,
		DisplayName: display,
	})
}
