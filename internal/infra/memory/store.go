package memory

import (
	"context"
	"sync"

	authDomain "stock-watch/internal/domain/auth"
)

// Store 為無資料庫時的記憶體後備，實作 Vault 與 UserRepository。
// 資料僅存活於行程內，行程結束即消失。
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	users  map[string]authDomain.User // email -> user
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
		users:  make(map[string]authDomain.User),
	}
}

// Vault impl

// Get 讀取指定鍵的值。
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set 寫入鍵值。
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete 移除指定鍵。
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// UserRepository impl

// FindByEmail 依 email 查詢使用者。
func (s *Store) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return authDomain.User{}, authDomain.ErrUserNotFound
	}
	return u, nil
}

// Save 新增或覆寫使用者。
func (s *Store) Save(ctx context.Context, user authDomain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
	return nil
}
