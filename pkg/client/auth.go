package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates an account and signs the client in as it.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out authResponse
	if err := c.send(ctx, http.MethodPost, "/register", body, &out); err != nil {
		return nil, err
	}
	return c.adopt(&out)
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.send(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	return c.adopt(&out)
}

func (c *Client) adopt(out *authResponse) (*User, error) {
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("auth response missing token or user")
	}
	c.setSession(out.Token, out.User.ID)
	return out.User, nil
}

// Logout revokes the current session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.send(ctx, http.MethodDelete, "/logout", nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.token, c.userID = "", ""
	c.mu.Unlock()
	return nil
}

func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var out listEnvelope[Session]
	if err := c.get(ctx, "/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) RevokeSession(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, nil)
}

// Me fetches the signed-in user and remembers its id.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/me", nil, &u); err != nil {
		return nil, err
	}
	c.setSession("", u.ID)
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name, email *string) (*User, error) {
	body := map[string]*string{}
	if name != nil {
		body["name"] = name
	}
	if email != nil {
		body["email"] = email
	}
	var u User
	if err := c.send(ctx, http.MethodPut, "/profile", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.send(ctx, http.MethodPut, "/password", body, nil)
}

// UploadAvatar replaces the user's avatar and returns its public URL.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out struct {
		AvatarURL string `json:"avatarUrl"`
	}
	req := c.request(ctx).SetFileReader("avatar", filename, r)
	if err := c.do(req, http.MethodPost, "/avatar", &out); err != nil {
		return "", err
	}
	return out.AvatarURL, nil
}

func (c *Client) currentUserID(ctx context.Context) (string, error) {
	if id := c.UserID(); id != "" {
		return id, nil
	}
	u, err := c.Me(ctx)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
