package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/myblog-dev/myblog/internal/auth"
	"github.com/myblog-dev/myblog/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateArticleRequest represents a request to create an article
type CreateArticleRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Summary   string `json:"summary" validate:"max=500"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

// UpdateArticleRequest is a partial update; omitted fields keep their value
type UpdateArticleRequest struct {
	Title     *string `json:"title" validate:"omitnil,min=1,max=200"`
	Summary   *string `json:"summary" validate:"omitempty,max=500"`
	Content   *string `json:"content" validate:"omitnil,min=1"`
	Published *bool   `json:"published"`
}

// changes returns the columns the request sets
func (r *UpdateArticleRequest) changes() map[string]any {
	updates := make(map[string]any)
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Summary != nil {
		updates["summary"] = *r.Summary
	}
	if r.Content != nil {
		updates["content"] = *r.Content
	}
	if r.Published != nil {
		updates["published"] = *r.Published
	}
	return updates
}

// ArticleDetail represents an article returned in responses
type ArticleDetail struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content,omitempty"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticlePage is one page of the article list
type ArticlePage struct {
	Data       []ArticleDetail `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func articleDetail(a *models.Article, withContent bool) ArticleDetail {
	d := ArticleDetail{
		ID:        a.ID,
		Title:     a.Title,
		Summary:   a.Summary,
		Published: a.Published,
		AuthorID:  a.AuthorID,
		Author:    a.Author.Username,
		CreatedAt: a.CreatedAt,
	}
	if withContent {
		d.Content = a.Content
	}
	return d
}

// parsePage reads page/size query parameters; page is 1-based
func parsePage(c *gin.Context) (page, size int, ok bool) {
	var err error
	page, size = 1, defaultPageSize

	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, false
		}
	}
	if v := c.Query("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil || size < 1 || size > maxPageSize {
			return 0, 0, false
		}
	}
	return page, size, true
}

// listArticles returns published articles, newest first
func (s *Server) listArticles(c *gin.Context) {
	page, size, ok := parsePage(c)
	if !ok {
		respondFail(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	query := s.db.Model(&models.Article{}).Where("published = ?", true).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count articles")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var articles []models.Article
	if err := query.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&articles).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list articles")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	details := make([]ArticleDetail, len(articles))
	for i := range articles {
		details[i] = articleDetail(&articles[i], false)
	}

	respondOK(c, http.StatusOK, ArticlePage{
		Data:       details,
		Pagination: Pagination{Page: page, Size: size, Total: total},
	}, "")
}

// getArticle returns a published article with its content
func (s *Server) getArticle(c *gin.Context) {
	var article models.Article
	if err := models.FindByIDWithPreload(s.db, c.Param("id"), &article, "Author"); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondFail(c, http.StatusNotFound, "Article not found")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find article")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !article.Published {
		respondFail(c, http.StatusNotFound, "Article not found")
		return
	}

	respondOK(c, http.StatusOK, articleDetail(&article, true), "")
}

// createArticle creates an article authored by the session user
func (s *Server) createArticle(c *gin.Context) {
	var req CreateArticleRequest
	if !s.bind(c, &req) {
		return
	}

	sessionData, _ := GetSessionData(c)

	article := &models.Article{
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  sessionData.UserID,
	}
	if err := s.db.Create(article).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create article")
		respondFail(c, http.StatusInternalServerError, "Failed to create article")
		return
	}
	article.Author.Username = sessionData.Username

	s.logger.Info().
		Str("article_id", article.ID).
		Str("author_id", sessionData.UserID).
		Msg("Article created")

	respondOK(c, http.StatusCreated, articleDetail(article, true), "Article created")
}

// authoredArticle loads an article the session user wrote. It replies with
// 404 or 403 itself and returns false in that case.
func (s *Server) authoredArticle(c *gin.Context, action string) (*models.Article, *auth.SessionData, bool) {
	sessionData, _ := GetSessionData(c)

	var article models.Article
	if err := models.FindByID(s.db, c.Param("id"), &article); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondFail(c, http.StatusNotFound, "Article not found")
			return nil, nil, false
		}
		s.logger.Error().Err(err).Msg("Failed to find article")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return nil, nil, false
	}

	if article.AuthorID != sessionData.UserID {
		respondFail(c, http.StatusForbidden, "Only the author can "+action+" this article")
		return nil, nil, false
	}
	return &article, sessionData, true
}

// updateArticle applies a partial update; only the author may do so
func (s *Server) updateArticle(c *gin.Context) {
	var req UpdateArticleRequest
	if !s.bind(c, &req) {
		return
	}
	updates := req.changes()
	if len(updates) == 0 {
		respondFail(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	article, sessionData, ok := s.authoredArticle(c, "edit")
	if !ok {
		return
	}

	if err := s.db.Model(article).Updates(updates).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update article")
		respondFail(c, http.StatusInternalServerError, "Failed to update article")
		return
	}

	var updated models.Article
	if err := models.FindByIDWithPreload(s.db, article.ID, &updated, "Author"); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reload article")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info().
		Str("article_id", article.ID).
		Str("updated_by", sessionData.UserID).
		Msg("Article updated")

	respondOK(c, http.StatusOK, articleDetail(&updated, true), "Article updated")
}

// deleteArticle deletes an article; only its author may do so
func (s *Server) deleteArticle(c *gin.Context) {
	article, sessionData, ok := s.authoredArticle(c, "delete")
	if !ok {
		return
	}

	if err := s.db.Delete(article).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete article")
		respondFail(c, http.StatusInternalServerError, "Failed to delete article")
		return
	}

	s.logger.Info().
		Str("article_id", article.ID).
		Str("deleted_by", sessionData.UserID).
		Msg("Article deleted")

	respondOK(c, http.StatusOK, nil, "Article deleted")
}
