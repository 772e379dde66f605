package goPress

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/MrEthical07/goPress/session"
)

// UpdateAccount renames the account. The server rotates the access token on
// this endpoint, so the whole session is re-established from the response.
func (c *Client) UpdateAccount(ctx context.Context, id, name string) (*Account, error) {
	var resp envelope[accountPayload]
	err := c.do(ctx, http.MethodPut, "/account/update/"+url.PathEscape(id), nil, map[string]string{"name": name}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Data.Token != "" {
		return c.adoptSession(ctx, resp.Data)
	}
	account := resp.Data.account()
	return &account, nil
}

// ChangePassword verifies the old password and installs a new one. The
// session is untouched; the current access credential stays valid.
func (c *Client) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	var resp envelope[struct{}]
	return c.do(ctx, http.MethodPut, "/account/change-password/"+url.PathEscape(id), nil, req, &resp)
}

// UpdateAvatar points the account at an already-hosted avatar URL and
// merges it into the session's user record.
func (c *Client) UpdateAvatar(ctx context.Context, id, avatarURL string) (*Account, error) {
	var resp envelope[accountPayload]
	err := c.do(ctx, http.MethodPut, "/account/update-avatar/"+url.PathEscape(id), nil, map[string]string{"avatar": avatarURL}, &resp)
	if err != nil {
		return nil, err
	}

	avatar := resp.Data.Avatar
	if err := c.session.UpdateUser(ctx, session.UserPatch{Avatar: &avatar}); err != nil && !errors.Is(err, session.ErrNoSession) {
		return nil, err
	}
	account := resp.Data.account()
	return &account, nil
}

// UploadAvatar uploads image content as the account avatar and merges the
// resulting URL into the session's user record. Returns the hosted URL.
func (c *Client) UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error) {
	var resp envelope[struct {
		Avatar string `json:"avatar"`
	}]

	err := c.upload(ctx, "/account/avatar", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("avatar", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, content)
		return err
	}, &resp)
	if err != nil {
		return "", err
	}

	avatar := resp.Data.Avatar
	if err := c.session.UpdateUser(ctx, session.UserPatch{Avatar: &avatar}); err != nil && !errors.Is(err, session.ErrNoSession) {
		return "", err
	}
	return avatar, nil
}

// Statistics fetches the admin dashboard summary for the given window.
func (c *Client) Statistics(ctx context.Context, from, to time.Time) (*AccountStatistics, error) {
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		query.Set("to", to.UTC().Format(time.RFC3339))
	}

	var resp envelope[AccountStatistics]
	if err := c.do(ctx, http.MethodGet, "/account/statistics", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
