// Package client is the typed blog API. Every call goes through the request
// pipeline, so callers receive unwrapped data and already-notified errors.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/myblog-dev/myblog/internal/request"
	"github.com/myblog-dev/myblog/internal/session"
)

// Client represents the blog API client
type Client struct {
	pipeline *request.Client
	store    session.Store
}

// New creates an API client over a configured pipeline and the session store
// the pipeline reads from.
func New(pipeline *request.Client, store session.Store) *Client {
	return &Client{pipeline: pipeline, store: store}
}

// User is the public user profile
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the unwrapped login payload
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Login authenticates and persists the returned token as the current session
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.pipeline.Post(ctx, "/api/auth/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response did not include a token")
	}
	if err := c.store.SetToken(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}
	return &resp, nil
}

// Register creates an account; it does not log in
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.pipeline.Post(ctx, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the current user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.pipeline.Get(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Validate checks the stored token with the server
func (c *Client) Validate(ctx context.Context) (*User, error) {
	var user User
	if err := c.pipeline.Get(ctx, "/api/auth/validate", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the server and drops the local session. The local token is
// cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	serverErr := c.pipeline.Post(ctx, "/api/auth/logout", nil, nil)
	if err := c.store.ClearToken(); err != nil {
		return err
	}
	return serverErr
}

// Article represents a blog article
type Article struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	Content   string `json:"content,omitempty"`
	Published bool   `json:"published"`
	AuthorID  string `json:"author_id"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ArticlePage is one page of articles
type ArticlePage struct {
	Data       []Article  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

// CreateArticleRequest represents the article creation request
type CreateArticleRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdateArticleRequest changes only the fields that are set
type UpdateArticleRequest struct {
	Title     *string `json:"title,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// ListArticles returns one page of published articles
func (c *Client) ListArticles(ctx context.Context, page, size int) (*ArticlePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var result ArticlePage
	if err := c.pipeline.Get(ctx, "/api/articles?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetArticle returns one article by ID
func (c *Client) GetArticle(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := c.pipeline.Get(ctx, "/api/articles/"+url.PathEscape(id), &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle creates an article authored by the current user
func (c *Client) CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	var article Article
	if err := c.pipeline.Post(ctx, "/api/articles", req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle edits an article written by the current user
func (c *Client) UpdateArticle(ctx context.Context, id string, req UpdateArticleRequest) (*Article, error) {
	var article Article
	if err := c.pipeline.Put(ctx, "/api/articles/"+url.PathEscape(id), req, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle deletes an article by ID
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.pipeline.Delete(ctx, "/api/articles/"+url.PathEscape(id), nil)
}

// Health returns the raw, non-envelope health document
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var raw json.RawMessage
	if err := c.pipeline.Get(ctx, "/health", &raw); err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return doc, nil
}
