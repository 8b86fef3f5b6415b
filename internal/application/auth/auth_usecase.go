package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stock-watch/internal/domain/auth"
)

// Vault 為字串鍵值的耐久儲存，承載登入狀態（token 與使用者資料）。
type Vault interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// 耐久儲存使用的兩把鍵：token 存在即視為已登入。
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// UserRepository 存取註冊過的使用者。
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (auth.User, error)
	Save(ctx context.Context, user auth.User) error
}

// PasswordHasher 產生與驗證密碼雜湊。
type PasswordHasher interface {
	Compare(hashed, plain string) bool
	Hash(plain string) (string, error)
}

// TokenIssuer 簽發 access token。
type TokenIssuer interface {
	Issue(ctx context.Context, user auth.User) (auth.Token, error)
}

// Service 實作模擬認證：固定延遲後回覆成敗，成功時寫入耐久儲存。
// 沒有真正的後端驗證——未註冊的 email 只要輸入合法就放行，
// 但註冊過的帳號必須通過密碼雜湊比對。
type Service struct {
	users  UserRepository
	vault  Vault
	hasher PasswordHasher
	tokens TokenIssuer
	delay  time.Duration
	newID  func() string
}

// NewService 建立認證服務。delay 為模擬 API 延遲，可為 0。
func NewService(users UserRepository, vault Vault, hasher PasswordHasher, tokens TokenIssuer, delay time.Duration) *Service {
	return &Service{
		users:  users,
		vault:  vault,
		hasher: hasher,
		tokens: tokens,
		delay:  delay,
		newID:  uuid.NewString,
	}
}

// Result 為登入/註冊成功的輸出。
type Result struct {
	User  auth.User
	Token auth.Token
}

// storedUser 為寫入 Vault 的使用者 JSON 形狀。
type storedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login 驗證輸入並簽發 token。驗證失敗一律回 ErrInvalidCredentials，
// 且不寫入任何耐久儲存鍵。
func (s *Service) Login(ctx context.Context, creds auth.Credentials) (Result, error) {
	var out Result
	if err := s.simulateLatency(ctx); err != nil {
		return out, err
	}

	creds = creds.Normalize()
	if err := creds.ValidateLogin(); err != nil {
		return out, err
	}

	user, err := s.users.FindByEmail(ctx, creds.Email)
	switch {
	case err == nil:
		if !s.hasher.Compare(user.PasswordHash, creds.Password) {
			return out, auth.ErrInvalidCredentials
		}
	case errors.Is(err, auth.ErrUserNotFound):
		// 未註冊帳號：模擬後端，直接放行並組一個假使用者。
		user = auth.User{
			ID:    s.newID(),
			Email: creds.Email,
			Name:  creds.DisplayName(),
		}
	default:
		return out, fmt.Errorf("find user: %w", err)
	}

	return s.establish(ctx, user)
}

// Signup 註冊新使用者（密碼以雜湊保存）並直接登入。
func (s *Service) Signup(ctx context.Context, creds auth.Credentials) (Result, error) {
	var out Result
	if err := s.simulateLatency(ctx); err != nil {
		return out, err
	}

	creds = creds.Normalize()
	if err := creds.ValidateSignup(); err != nil {
		return out, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return out, fmt.Errorf("hash password: %w", err)
	}
	user := auth.User{
		ID:           s.newID(),
		Email:        creds.Email,
		Name:         creds.Name,
		PasswordHash: hash,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return out, fmt.Errorf("save user: %w", err)
	}

	return s.establish(ctx, user)
}

// Logout 刪除兩把耐久儲存鍵，結束登入狀態。
func (s *Service) Logout(ctx context.Context) error {
	if err := s.vault.Delete(ctx, KeyAuthToken); err != nil {
		return fmt.Errorf("delete auth token: %w", err)
	}
	if err := s.vault.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Session 讀取耐久儲存中的使用者資料；存在時可跳過登入畫面。
func (s *Service) Session(ctx context.Context) (auth.User, bool, error) {
	raw, ok, err := s.vault.Get(ctx, KeyUser)
	if err != nil {
		return auth.User{}, false, fmt.Errorf("read stored user: %w", err)
	}
	if !ok {
		return auth.User{}, false, nil
	}
	var su storedUser
	if err := json.Unmarshal([]byte(raw), &su); err != nil {
		return auth.User{}, false, fmt.Errorf("decode stored user: %w", err)
	}
	return auth.User{ID: su.ID, Email: su.Email, Name: su.Name}, true, nil
}

func (s *Service) establish(ctx context.Context, user auth.User) (Result, error) {
	var out Result
	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return out, fmt.Errorf("issue token: %w", err)
	}

	blob, err := json.Marshal(storedUser{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return out, fmt.Errorf("encode user: %w", err)
	}
	if err := s.vault.Set(ctx, KeyAuthToken, token.AccessToken); err != nil {
		return out, fmt.Errorf("store auth token: %w", err)
	}
	if err := s.vault.Set(ctx, KeyUser, string(blob)); err != nil {
		return out, fmt.Errorf("store user: %w", err)
	}

	out.User = user
	out.Token = token
	return out, nil
}

// simulateLatency 等待固定延遲，模擬遠端認證呼叫；ctx 取消時提前結束。
func (s *Service) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
