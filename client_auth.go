package goPress

import (
	"context"
	"log/slog"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. On success the session store
// and the persisted mirror hold the returned identity and tokens; every
// subsequent request is authenticated automatically.
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	var resp envelope[accountPayload]
	err := c.do(ctx, http.MethodPost, "/account/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return nil, err
	}
	return c.adoptSession(ctx, resp.Data)
}

// Register creates an account and, like [Client.Login], establishes the
// session from the response.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	var resp envelope[accountPayload]
	err := c.do(ctx, http.MethodPost, "/account/register", nil, req, &resp)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return nil, err
	}
	return c.adoptSession(ctx, resp.Data)
}

// adoptSession maps an account payload into the session store. Shared by
// login, register, and the account-update path that rotates the token.
func (c *Client) adoptSession(ctx context.Context, payload accountPayload) (*Account, error) {
	account := payload.account()
	if err := c.session.SetSession(ctx, account.User, payload.Token, payload.RefreshToken); err != nil {
		return nil, err
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.events.Emit(ctx, Event{Type: EventLogin, UserID: account.User.ID})
	c.logger.DebugContext(ctx, "session established", slog.String("user", account.User.ID))
	return &account, nil
}

// Logout tells the server to drop the session, then clears local state.
// Local state is cleared even when the server call fails: a logout must
// never leave a usable session behind.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.session == nil {
		return ErrClientNotReady
	}

	snapshot := c.session.Current()
	callErr := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)

	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	c.metrics.Inc(MetricLogout)
	c.events.Emit(ctx, Event{Type: EventLogout, UserID: snapshot.User.ID})
	return callErr
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, map[string]string{"email": email}, nil)
}

// ResetPassword completes a reset started by [Client.ForgotPassword].
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, resetPasswordRequest{Token: token, Password: password}, nil)
}
