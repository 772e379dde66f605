package goPress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/MrEthical07/goPress/transport"
)

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do executes one API call through the pipeline: marshal the body, attach
// headers, classify the response, decode into out. All typed wrappers
// funnel through here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil || c.http == nil {
		return ErrClientNotReady
	}

	target := c.endpoint(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.API.UserAgent)
	if id := requestIDFromContext(ctx); id != "" {
		req.Header.Set(transport.HeaderRequestID, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return classifyResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// upload executes a multipart POST (avatar and image endpoints). form
// populates the multipart writer; the whole payload is buffered so the
// pipeline can replay it after a refresh.
func (c *Client) upload(ctx context.Context, path string, form func(*multipart.Writer) error, out any) error {
	if c == nil || c.http == nil {
		return ErrClientNotReady
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := form(writer); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.API.UserAgent)
	if id := requestIDFromContext(ctx); id != "" {
		req.Header.Set(transport.HeaderRequestID, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return classifyResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// classifyResponse maps an error status onto the failure taxonomy, keeping
// the server's envelope message when one is present.
func classifyResponse(resp *http.Response) error {
	var kind error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		kind = ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		kind = ErrNotFound
	case resp.StatusCode >= 500:
		kind = ErrServer
	default:
		kind = ErrRequestRejected
	}

	message := ""
	var env envelope[json.RawMessage]
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&env); err == nil {
		message = env.Message
	}

	return &APIError{Status: resp.StatusCode, Message: message, kind: kind}
}

// IsTerminalAuthFailure reports whether err is the propagated form of an
// irrecoverable authorization failure (the session has been torn down).
func IsTerminalAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
