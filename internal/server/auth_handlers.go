package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/myblog-dev/myblog/internal/auth"
	"github.com/myblog-dev/myblog/internal/models"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanumdash"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Nickname string `json:"nickname" validate:"max=64"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string      `json:"token"`
	User  *UserDetail `json:"user"`
}

// UserDetail represents user information returned in responses
type UserDetail struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func userDetail(u *models.User) *UserDetail {
	return &UserDetail{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// bind decodes and validates a JSON body, replying 400 on failure
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validator.Struct(req); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// register creates an account. A taken username or email is an
// application-level failure (200 with success=false).
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if !s.bind(c, &req) {
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check existing users")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count > 0 {
		respondFail(c, http.StatusOK, "Username or email already exists")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		respondFail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Nickname:     nickname,
	}
	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		respondFail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")

	respondOK(c, http.StatusOK, userDetail(user), "Registration successful")
}

// login authenticates with username and password. Bad credentials are an
// application-level failure.
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if !s.bind(c, &req) {
		return
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondFail(c, http.StatusOK, "Invalid username or password")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		respondFail(c, http.StatusOK, "Invalid username or password")
		return
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		respondFail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User logged in")

	respondOK(c, http.StatusOK, LoginResponse{Token: token, User: userDetail(&user)}, "Login successful")
}

// logout is stateless: the client discards its token
func (s *Server) logout(c *gin.Context) {
	respondOK(c, http.StatusOK, nil, "Logout successful")
}

func (s *Server) getCurrentUser(c *gin.Context) {
	s.respondSessionUser(c)
}

// validateToken is reached only with a valid token; it echoes the user
func (s *Server) validateToken(c *gin.Context) {
	s.respondSessionUser(c)
}

func (s *Server) respondSessionUser(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := models.FindByID(s.db, sessionData.UserID, &user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondFail(c, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error().Err(err).Str("user_id", sessionData.UserID).Msg("Failed to find user")
		respondFail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, userDetail(&user), "")
}
