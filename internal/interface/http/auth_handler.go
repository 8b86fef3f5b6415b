package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "stock-watch/internal/domain/auth"
)

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	res, err := s.authSvc.Login(c.Request.Context(), authDomain.Credentials{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		log.Printf("[Auth] login failure for %s: %v", body.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid email or password", "error_code": errCodeInvalidCredentials})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         userPayloadFrom(res.User),
		"access_token": res.Token.AccessToken,
		"token_type":   "Bearer",
		"expiry":       res.Token.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *Server) handleSignup(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	res, err := s.authSvc.Signup(c.Request.Context(), authDomain.Credentials{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		if errors.Is(err, authDomain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "error_code": errCodeInvalidInput})
			return
		}
		log.Printf("[Auth] signup failure for %s: %v", body.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         userPayloadFrom(res.User),
		"access_token": res.Token.AccessToken,
		"token_type":   "Bearer",
		"expiry":       res.Token.ExpiresAt.Format(time.RFC3339),
	})
}

// handleSession 回報耐久儲存中的登入狀態，讓前端跳過登入畫面。
func (s *Server) handleSession(c *gin.Context) {
	user, ok, err := s.authSvc.Session(c.Request.Context())
	if err != nil {
		log.Printf("[Auth] session read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"authenticated": true,
		"user":          userPayloadFrom(user),
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.authSvc.Logout(c.Request.Context()); err != nil {
		log.Printf("[Auth] logout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error", "error_code": errCodeInternal})
		return
	}
	log.Printf("[Auth] user %s logged out", currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func userPayloadFrom(u authDomain.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Name: u.Name}
}
