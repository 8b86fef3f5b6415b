package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// VaultRepo 以 local_storage 資料表實作字串鍵值儲存。
type VaultRepo struct {
	db *sql.DB
}

// NewVaultRepo 建立 VaultRepo。
func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

// Get 讀取指定鍵的值；鍵不存在時回傳 ok=false 而非錯誤。
func (r *VaultRepo) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM local_storage WHERE key = $1;`
	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set 寫入鍵值；已存在時覆寫。
func (r *VaultRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO local_storage (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
`
	if _, err := r.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete 移除指定鍵；鍵不存在時視為成功。
func (r *VaultRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM local_storage WHERE key = $1;`
	if _, err := r.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
