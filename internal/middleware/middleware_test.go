package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  "1",
		"role": "user",
		"tv":   0,
		"iat":  now.Unix(),
		"exp":  now.Add(15 * time.Minute).Unix(),
	}
}

func runAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := middleware.AuthJWT(config.Config{JWTSecret: testSecret})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runAuthJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := runAuthJWT(t, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", validClaims())
	rec, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, testSecret, claims)
	rec, _ := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	token := signToken(t, testSecret, validClaims())
	rec, c := runAuthJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(1), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "user", c.Get(middleware.CtxUserRoleKey))
	assert.Equal(t, 0, c.Get(middleware.CtxTokenVersionKey))
}

type userRepoStub struct {
	user model.User
	err  error
}

func (s *userRepoStub) Create(ctx context.Context, user *model.User) error {
	panic("not used in middleware tests")
}

func (s *userRepoStub) FindByID(ctx context.Context, userID int64) (model.User, error) {
	return s.user, s.err
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (model.User, error) {
	panic("not used in middleware tests")
}

func (s *userRepoStub) IncrementTokenVersion(ctx context.Context, userID int64) error {
	panic("not used in middleware tests")
}

func runTokenVersionGuard(t *testing.T, users *userRepoStub, userID int64, tv int) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, userID)
	c.Set(middleware.CtxTokenVersionKey, tv)

	mw := middleware.TokenVersionGuard(users)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestTokenVersionGuard_Match(t *testing.T) {
	users := &userRepoStub{user: model.User{ID: 1, TokenVersion: 2}}
	rec := runTokenVersionGuard(t, users, 1, 2)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenVersionGuard_MismatchAfterLogout(t *testing.T) {
	//logoutでDB側が3に進んだ後、tv=2の古いトークンは弾かれる
	users := &userRepoStub{user: model.User{ID: 1, TokenVersion: 3}}
	rec := runTokenVersionGuard(t, users, 1, 2)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_UserMissing(t *testing.T) {
	users := &userRepoStub{err: repo.ErrNotFound}
	rec := runTokenVersionGuard(t, users, 1, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func runAdminRoleGuard(t *testing.T, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(middleware.CtxUserRoleKey, role)
	}

	mw := middleware.AdminRoleGuard()
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestAdminRoleGuard_AdminAllowed(t *testing.T) {
	rec := runAdminRoleGuard(t, "admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleGuard_UserForbidden(t *testing.T) {
	rec := runAdminRoleGuard(t, "user")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_NoRole(t *testing.T) {
	rec := runAdminRoleGuard(t, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
