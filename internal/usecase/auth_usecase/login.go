package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/session"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Email string         `json:"email"`
	Role  string         `json:"role"`
	Token JwtAccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済みユーザー
var ErrUserInactive = errors.New("user is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type LoginUsecase struct {
	users    repository.AdminUserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
	sessions *session.Context
}

func NewLoginUsecase(
	users repository.AdminUserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
	sessions *session.Context,
) *LoginUsecase {
	return &LoginUsecase{
		users:    users,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
		sessions: sessions,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return out, ErrUserInactive
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return out, err
	}

	//最終ログイン更新（失敗してもログインは成立させる）
	_ = u.users.UpdateLastLogin(ctx, user.ID, now)

	//セッションを差し替え（管理画面のゲートが購読している）
	u.sessions.Set(session.State{
		LoggedIn:  true,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		ExpiresAt: accessExp,
	})

	out = LoginOutput{
		Email: user.Email,
		Role:  string(user.Role),
		Token: JwtAccessToken{
			AccessToken: accessToken,
			ExpiresIn:   int(accessExp.Sub(now).Seconds()),
		},
	}
	return out, nil
}

// Logout はセッションを破棄する。
func (u *LoginUsecase) Logout(ctx context.Context) {
	u.sessions.Clear()
}
