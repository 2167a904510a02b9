package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
	"time"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	//最終ログイン時刻の更新
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}
