package goPress

import (
	"context"
	"net/http"
	"net/url"
)

type feedbackRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating,omitempty"`
}

// ArticleFeedback lists reader feedback on an article.
func (c *Client) ArticleFeedback(ctx context.Context, articleID string) ([]Feedback, error) {
	var resp envelope[[]Feedback]
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(articleID)+"/feedbacks", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SubmitFeedback posts a comment (and optional 1-5 rating) on an article.
func (c *Client) SubmitFeedback(ctx context.Context, articleID, content string, rating int) (*Feedback, error) {
	var resp envelope[Feedback]
	if err := c.do(ctx, http.MethodPost, "/articles/"+url.PathEscape(articleID)+"/feedbacks", nil, feedbackRequest{Content: content, Rating: rating}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
