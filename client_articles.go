package goPress

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Articles lists published articles, narrowed by filters.
func (c *Client) Articles(ctx context.Context, filters ArticleFilters) (*ArticleList, error) {
	query := url.Values{}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(filters.PageSize))
	}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Tag != "" {
		query.Set("tag", filters.Tag)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.SortBy != "" {
		query.Set("sortBy", string(filters.SortBy))
	}

	var list ArticleList
	if err := c.do(ctx, http.MethodGet, "/articles", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ArticleByID fetches a single article.
func (c *Client) ArticleByID(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// PopularArticles fetches the most viewed articles. limit <= 0 uses the
// server default.
func (c *Client) PopularArticles(ctx context.Context, limit int) ([]Article, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var articles []Article
	if err := c.do(ctx, http.MethodGet, "/articles/popular", query, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// FeaturedArticles fetches the editorially featured set.
func (c *Client) FeaturedArticles(ctx context.Context) ([]Article, error) {
	var articles []Article
	if err := c.do(ctx, http.MethodGet, "/articles/featured", nil, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// SearchArticles runs a full-text search.
func (c *Client) SearchArticles(ctx context.Context, q string) ([]Article, error) {
	query := url.Values{}
	query.Set("q", q)

	var articles []Article
	if err := c.do(ctx, http.MethodGet, "/articles/search", query, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// ArticlesByCategory pages through one category.
func (c *Client) ArticlesByCategory(ctx context.Context, category string, page, pageSize int) (*ArticleList, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	var list ArticleList
	if err := c.do(ctx, http.MethodGet, "/articles/category/"+url.PathEscape(category), query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// PostNews publishes a news entry: text fields plus any number of image
// attachments, as one multipart request.
func (c *Client) PostNews(ctx context.Context, post NewsPost) error {
	return c.upload(ctx, "/posts", func(w *multipart.Writer) error {
		if err := w.WriteField("title", post.Title); err != nil {
			return err
		}
		if err := w.WriteField("summary", post.Summary); err != nil {
			return err
		}
		if err := w.WriteField("content", post.Content); err != nil {
			return err
		}
		for _, tag := range post.Tags {
			if err := w.WriteField("tags", tag); err != nil {
				return err
			}
		}
		if post.Published != nil {
			if err := w.WriteField("isPublished", strconv.FormatBool(*post.Published)); err != nil {
				return err
			}
		}
		for _, image := range post.Images {
			part, err := w.CreateFormFile("images", image.Filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, image.Content); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}

// RelatedArticles fetches articles related to the given one.
func (c *Client) RelatedArticles(ctx context.Context, articleID string, limit int) ([]Article, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var articles []Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(articleID)+"/related", query, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
