package goPress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/MrEthical07/goPress/session"
	"github.com/MrEthical07/goPress/vault"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	// RefreshToken is only present when the server rotates it; the observed
	// contract does not guarantee rotation.
	RefreshToken string `json:"refresh_token"`
}

// refreshExchange implements [transport.Refresher]: exchange the stored
// refresh credential for a new access credential and persist it before
// returning, so the pipeline's replay reads the fresh token.
type refreshExchange struct {
	client *Client
}

func (r *refreshExchange) Refresh(ctx context.Context) (string, error) {
	c := r.client

	refreshToken, err := c.vault.Get(ctx, session.KeyRefreshToken)
	if errors.Is(err, vault.ErrNotFound) || (err == nil && refreshToken == "") {
		return "", ErrRefreshUnavailable
	}
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/refresh"), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.API.UserAgent)

	resp, err := c.raw.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrRefreshRejected, resp.StatusCode)
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.AccessToken == "" {
		return "", fmt.Errorf("%w: refresh payload", ErrBadResponse)
	}

	if err := c.session.RotateTokens(ctx, out.AccessToken, out.RefreshToken); err != nil {
		return "", err
	}

	c.events.Emit(ctx, Event{Type: EventRefresh})
	c.logger.DebugContext(ctx, "access credential refreshed",
		slog.Bool("refresh_rotated", out.RefreshToken != ""),
	)
	return out.AccessToken, nil
}
