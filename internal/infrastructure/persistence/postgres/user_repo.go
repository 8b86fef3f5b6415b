package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	authDomain "stock-watch/internal/domain/auth"
)

// UserRepo 提供註冊使用者的存取。
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo 建立 UserRepo。
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindByEmail 依 email 查詢使用者。
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	const q = `
SELECT id, email, display_name, password_hash
FROM users
WHERE email = $1
LIMIT 1;
`
	var u authDomain.User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authDomain.User{}, authDomain.ErrUserNotFound
		}
		return authDomain.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Save 新增使用者；email 已存在時覆寫名稱與密碼雜湊。
func (r *UserRepo) Save(ctx context.Context, user authDomain.User) error {
	const q = `
INSERT INTO users (id, email, display_name, password_hash, created_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (email) DO UPDATE SET display_name = EXCLUDED.display_name, password_hash = EXCLUDED.password_hash;
`
	if _, err := r.db.ExecContext(ctx, q, user.ID, user.Email, user.Name, user.PasswordHash); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
