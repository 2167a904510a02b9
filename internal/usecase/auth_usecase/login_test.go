package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/session"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type AdminUserRepoMock struct{ mock.Mock }

func (m *AdminUserRepoMock) Create(ctx context.Context, user *model.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AdminUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminUserRepoMock) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

type stubVerifier struct{ ok bool }

func (v stubVerifier) Verify(plain string, hashed string) bool { return v.ok }

type stubIssuer struct{ err error }

func (i stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	return "token-123", now.Add(15 * time.Minute), nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func activeAdmin() *model.AdminUser {
	return &model.AdminUser{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: "$2a$12$hash",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
}

func TestLogin_UnknownEmail_InvalidCredentials(t *testing.T) {
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	uc := auth.NewLoginUsecase(users, stubVerifier{ok: true}, stubIssuer{}, fixedClock{t: time.Now()}, session.NewContext())

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_WrongPassword_InvalidCredentials(t *testing.T) {
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(activeAdmin(), nil)

	uc := auth.NewLoginUsecase(users, stubVerifier{ok: false}, stubIssuer{}, fixedClock{t: time.Now()}, session.NewContext())

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "admin@example.com", Password: "bad"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser_Rejected(t *testing.T) {
	u := activeAdmin()
	u.IsActive = false

	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(u, nil)

	uc := auth.NewLoginUsecase(users, stubVerifier{ok: true}, stubIssuer{}, fixedClock{t: time.Now()}, session.NewContext())

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "admin@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestLogin_Success_SetsSessionAndIssuesToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(activeAdmin(), nil)
	users.On("UpdateLastLogin", mock.Anything, int64(1), now).Return(nil)

	sessions := session.NewContext()
	uc := auth.NewLoginUsecase(users, stubVerifier{ok: true}, stubIssuer{}, fixedClock{t: now}, sessions)

	out, err := uc.Execute(context.Background(), auth.LoginInput{Email: "admin@example.com", Password: "correct"})
	assert.NoError(t, err)
	assert.Equal(t, "token-123", out.Token.AccessToken)
	assert.Equal(t, 15*60, out.Token.ExpiresIn)
	assert.Equal(t, "ADMIN", out.Role)

	//セッションが差し替わっている
	s := sessions.Current()
	assert.True(t, s.LoggedIn)
	assert.Equal(t, int64(1), s.UserID)
	assert.Equal(t, "ADMIN", s.Role)

	users.AssertExpectations(t)
}

func TestLogout_ClearsSession(t *testing.T) {
	sessions := session.NewContext()
	sessions.Set(session.State{LoggedIn: true, UserID: 1})

	uc := auth.NewLoginUsecase(new(AdminUserRepoMock), stubVerifier{}, stubIssuer{}, fixedClock{t: time.Now()}, sessions)
	uc.Logout(context.Background())

	assert.False(t, sessions.Current().LoggedIn)
}

func TestBcryptHasherAndVerifier_RoundTrip(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	verifier := auth.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("s3cret-password")
	assert.NoError(t, err)
	assert.True(t, verifier.Verify("s3cret-password", hashed))
	assert.False(t, verifier.Verify("wrong", hashed))
}

func TestLogin_RepoFailurePropagates(t *testing.T) {
	users := new(AdminUserRepoMock)
	users.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(nil, errors.New("db down"))

	uc := auth.NewLoginUsecase(users, stubVerifier{ok: true}, stubIssuer{}, fixedClock{t: time.Now()}, session.NewContext())

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "admin@example.com", Password: "x"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
