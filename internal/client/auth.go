package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token. The session, and through it the
// credential store, is only touched when the backend returned a token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/login", credentials{Username: username, Password: password}, false)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var data struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode login response failed: %w", err)
	}
	if data.Token == "" {
		return "", ErrLoginFailed
	}

	if err := c.session.Begin(ctx, data.Token); err != nil {
		return "", err
	}
	c.log.WithFields(map[string]interface{}{"username": username}).Infof("logged in")
	return data.Token, nil
}

// Register creates the account and then logs in with the same credentials.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/register", credentials{Username: username, Password: password}, false)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	return c.Login(ctx, username, password)
}
