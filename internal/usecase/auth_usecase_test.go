package usecase_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoFake struct {
	byEmail map[string]model.User
	byID    map[int64]model.User
	nextID  int64
}

func newUserRepoFake() *userRepoFake {
	return &userRepoFake{byEmail: map[string]model.User{}, byID: map[int64]model.User{}}
}

func (f *userRepoFake) Create(ctx context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = *user
	f.byID[user.ID] = *user
	return nil
}

func (f *userRepoFake) FindByID(ctx context.Context, userID int64) (model.User, error) {
	u, ok := f.byID[userID]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *userRepoFake) FindByEmail(ctx context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *userRepoFake) IncrementTokenVersion(ctx context.Context, userID int64) error {
	u, ok := f.byID[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.TokenVersion++
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return nil
}

// plainに接頭辞を付けるだけの偽hasher
type hasherFake struct{}

func (hasherFake) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type verifierFake struct{}

func (verifierFake) Verify(plain string, hashed string) bool { return hashed == "hashed:"+plain }

type issuerFake struct{}

func (issuerFake) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	return "token", now.Add(15 * time.Minute), nil
}

type clockFake struct{ now time.Time }

func (c clockFake) Now() time.Time { return c.now }

func newAuthUsecase(users repo.UserRepository) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(users, hasherFake{}, verifierFake{}, issuerFake{}, clockFake{now: time.Unix(1700000000, 0)})
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	users := newUserRepoFake()
	uc := newAuthUsecase(users)

	user, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Taro Yamada",
		Email:    "Taro@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	//メールは小文字化、パスワードはハッシュのみ保存
	assert.Equal(t, "taro@example.com", user.Email)
	assert.Equal(t, "hashed:password123", user.PasswordHash)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotZero(t, user.ID)
}

func TestAuthUsecase_Register_Validation(t *testing.T) {
	uc := newAuthUsecase(newUserRepoFake())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "ab",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Fields, "full_name")
	assert.Contains(t, he.Fields, "email")
	assert.Contains(t, he.Fields, "password")
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	users := newUserRepoFake()
	uc := newAuthUsecase(users)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Taro Yamada", Email: "taro@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Another Taro", Email: "TARO@example.com", Password: "password456",
	})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 409, he.Status)
	assert.Contains(t, he.Fields, "email")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	users := newUserRepoFake()
	uc := newAuthUsecase(users)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Taro Yamada", Email: "taro@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, token, err := uc.Login(context.Background(), usecase.LoginInput{
		Email: "taro@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", user.Email)
	assert.Equal(t, "token", token.AccessToken)
	assert.False(t, token.ExpiresAt.IsZero())
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	users := newUserRepoFake()
	uc := newAuthUsecase(users)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Taro Yamada", Email: "taro@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), usecase.LoginInput{
		Email: "taro@example.com", Password: "wrong-password",
	})
	assertHTTPError(t, err, 401, "invalid email or password")
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	uc := newAuthUsecase(newUserRepoFake())

	//メール無しもパスワード不一致も同じメッセージ
	_, _, err := uc.Login(context.Background(), usecase.LoginInput{
		Email: "nobody@example.com", Password: "password123",
	})
	assertHTTPError(t, err, 401, "invalid email or password")
}

func TestAuthUsecase_Logout_IncrementsTokenVersion(t *testing.T) {
	users := newUserRepoFake()
	uc := newAuthUsecase(users)

	created, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Taro Yamada", Email: "taro@example.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), created.ID))
	require.NoError(t, uc.Logout(context.Background(), created.ID))

	u, err := users.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.TokenVersion)
}

func TestAuthUsecase_Me(t *testing.T) {
	users := newUserRepoFake()
	uc := newAuthUsecase(users)

	created, err := uc.Register(context.Background(), usecase.RegisterInput{
		FullName: "Taro Yamada", Email: "taro@example.com", Password: "password123",
	})
	require.NoError(t, err)

	u, err := uc.Me(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = uc.Me(context.Background(), 999)
	assertHTTPError(t, err, 404, "not found")
}
