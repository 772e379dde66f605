package goPress

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

type chatMessageRequest struct {
	Content   string `json:"content"`
	MediaType string `json:"mediaType,omitempty"`
	MediaURL  string `json:"mediaUrl,omitempty"`
}

// Chats lists the account's assistant conversations.
func (c *Client) Chats(ctx context.Context) ([]Chat, error) {
	var resp envelope[[]Chat]
	if err := c.do(ctx, http.MethodGet, "/chats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Messages fetches the full transcript of one chat.
func (c *Client) Messages(ctx context.Context, chatID string) ([]Message, error) {
	var resp envelope[[]Message]
	if err := c.do(ctx, http.MethodGet, "/chats/"+url.PathEscape(chatID)+"/messages", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateChat opens a new conversation with an initial message and returns
// the first turn. The server allocates the chat id; it comes back in the
// turn.
func (c *Client) CreateChat(ctx context.Context, content string) (*ChatTurn, error) {
	var turn ChatTurn
	if err := c.do(ctx, http.MethodPost, "/chats/new/messages", nil, chatMessageRequest{Content: content}, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// SendMessage appends a message to an existing chat and returns the
// user/assistant turn.
func (c *Client) SendMessage(ctx context.Context, chatID, content string) (*ChatTurn, error) {
	var turn ChatTurn
	if err := c.do(ctx, http.MethodPost, "/chats/"+url.PathEscape(chatID)+"/messages", nil, chatMessageRequest{Content: content}, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// SendImage uploads an image with an accompanying message into an existing
// chat. The assistant's reply in the returned turn carries the hosted media
// URL in [Message.MediaURL].
func (c *Client) SendImage(ctx context.Context, chatID, filename string, image io.Reader, content string) (*ChatTurn, error) {
	var turn ChatTurn
	err := c.upload(ctx, "/chats/"+url.PathEscape(chatID)+"/images", func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("image", filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, image); err != nil {
			return err
		}
		return w.WriteField("content", content)
	}, &turn)
	if err != nil {
		return nil, err
	}
	return &turn, nil
}
