package auth

import (
	"errors"
	"strings"
	"time"
)

// MinPasswordLen 為密碼最小長度。
const MinPasswordLen = 6

var (
	// ErrInvalidCredentials 表示登入輸入不完整或帳密不符。
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput 表示註冊輸入不完整。
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound 表示查無此使用者。
	ErrUserNotFound = errors.New("user not found")
)

// User 描述登入後的使用者基本資料。PasswordHash 僅在註冊帳號時存在。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

// Credentials 為登入/註冊的輸入。
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// Normalize 整理輸入（email 去空白並轉小寫）。
func (c Credentials) Normalize() Credentials {
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	c.Name = strings.TrimSpace(c.Name)
	return c
}

// ValidateLogin 檢查登入輸入：email 不可為空、密碼至少 MinPasswordLen 字元。
func (c Credentials) ValidateLogin() error {
	if c.Email == "" || len(c.Password) < MinPasswordLen {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidateSignup 檢查註冊輸入：在登入條件之外還需要名稱。
func (c Credentials) ValidateSignup() error {
	if c.Email == "" || len(c.Password) < MinPasswordLen || c.Name == "" {
		return ErrInvalidInput
	}
	return nil
}

// DisplayName 推導顯示名稱；未提供時取 email 的本地部分。
func (c Credentials) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	local, _, _ := strings.Cut(c.Email, "@")
	return local
}

// Token 為簽發給前端的 access token。
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}
