package view

import (
	"context"
	"errors"

	"varboard/internal/client"
	"varboard/internal/session"
)

const (
	msgLoginFailed     = "Login failed"
	msgMissingPassword = "Please enter username and password"
)

// AuthController backs the login/registration page and the logout action.
type AuthController struct {
	api     API
	session *session.Session
	alert   Alerter
	nav     Navigator
}

func NewAuthController(api API, sess *session.Session, alert Alerter, nav Navigator) *AuthController {
	return &AuthController{api: api, session: sess, alert: alert, nav: nav}
}

// Login navigates to the dashboard on success. A rejected login is alerted,
// not returned.
func (a *AuthController) Login(ctx context.Context, username, password string) error {
	if _, err := a.api.Login(ctx, username, password); err != nil {
		if errors.Is(err, client.ErrLoginFailed) {
			a.alert.Alert(msgLoginFailed)
			return nil
		}
		return err
	}
	a.nav.Navigate(LocationDashboard)
	return nil
}

// Register creates the account and logs straight in.
func (a *AuthController) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		a.alert.Alert(msgMissingPassword)
		return nil
	}
	if _, err := a.api.Register(ctx, username, password); err != nil {
		if errors.Is(err, client.ErrLoginFailed) {
			a.alert.Alert(msgLoginFailed)
			return nil
		}
		return err
	}
	a.nav.Navigate(LocationDashboard)
	return nil
}

func (a *AuthController) Logout(ctx context.Context) error {
	if err := a.session.End(ctx); err != nil {
		return err
	}
	a.nav.Navigate(LocationLogin)
	return nil
}
