package goPress

import (
	"io"
	"time"

	"github.com/MrEthical07/goPress/session"
)

// Account is the full account record returned by the auth and account
// endpoints. Its identity fields feed the session store; the timestamps are
// informational.
type Account struct {
	User      session.User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterRequest is the input for [Client.Register].
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePasswordRequest is the input for [Client.ChangePassword].
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Author is the byline on an [Article].
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Article is a published news/blog entry.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	Author      Author    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ReadTime    int       `json:"readTime"`
	Views       int       `json:"views"`
}

// ArticleList is a page of articles.
type ArticleList struct {
	Articles   []Article `json:"articles"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// NewsImage is one image attachment for [Client.PostNews].
type NewsImage struct {
	Filename string
	Content  io.Reader
}

// NewsPost is the input for [Client.PostNews]. Published is tri-state:
// nil leaves the publication state to the server's default.
type NewsPost struct {
	Title     string
	Summary   string
	Content   string
	Tags      []string
	Published *bool
	Images    []NewsImage
}

// SortOrder selects the listing order for [ArticleFilters].
type SortOrder string

const (
	// SortLatest orders by publication time, newest first.
	SortLatest SortOrder = "latest"
	// SortPopular orders by view count.
	SortPopular SortOrder = "popular"
	// SortTrending orders by recent view velocity.
	SortTrending SortOrder = "trending"
)

// ArticleFilters narrows [Client.Articles]. Zero values are omitted from
// the query string.
type ArticleFilters struct {
	Page     int
	PageSize int
	Category string
	Tag      string
	Search   string
	SortBy   SortOrder
}

// Chat is a conversation with the assistant widget.
type Chat struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	MessageCount int    `json:"messageCount"`
}

// Message is one turn in a [Chat].
type Message struct {
	ID        string    `json:"_id"`
	ChatID    string    `json:"chatId"`
	AccountID string    `json:"accountId"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Model     string    `json:"model,omitempty"`
	MediaType string    `json:"mediaType,omitempty"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatTurn is the user message and the assistant's reply produced by one
// [Client.SendMessage] call.
type ChatTurn struct {
	ChatID           string  `json:"chatId"`
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
}

// Feedback is a reader comment/rating on an article.
type Feedback struct {
	ID        string    `json:"_id"`
	ArticleID string    `json:"articleId"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountStatistics is the admin dashboard summary.
type AccountStatistics struct {
	Accounts  int `json:"accounts"`
	Articles  int `json:"articles"`
	Feedbacks int `json:"feedbacks"`
	Views     int `json:"views"`
}

// envelope is the server's uniform response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// accountPayload mirrors the wire shape of the account endpoints.
type accountPayload struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p accountPayload) account() Account {
	return Account{
		User: session.User{
			ID:     p.ID,
			Name:   p.Name,
			Email:  p.Email,
			Avatar: p.Avatar,
			Role:   p.Role,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
