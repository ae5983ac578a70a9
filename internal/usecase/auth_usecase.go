package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 実装を差し替えられるように小さなインターフェースで切る。
// 本番実装はcmd/api側でbcrypt・jwt・uuid・time.Nowを束ねる
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// 請求書番号などの一意なIDを発行する
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type AuthUsecase struct {
	users    repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewAuthUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func validateRegisterInput(in RegisterInput) map[string]string {
	fields := map[string]string{}
	if l := len(strings.TrimSpace(in.FullName)); l < 3 || l > 255 {
		fields["full_name"] = "full_name must be between 3 and 255 characters"
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "email must be a valid email address"
	}
	if l := len(in.Password); l < 8 || l > 255 {
		fields["password"] = "password must be between 8 and 255 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Registerは新規ユーザーを作る。roleは常にuser（adminはAPIからは作れない）
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if fields := validateRegisterInput(in); fields != nil {
		return model.User{}, NewValidationError("validation error", fields)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	//メール重複の先読みチェック。DBのunique制約が最終防衛線
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, &HTTPError{
			Status:  http.StatusConflict,
			Message: "email already registered",
			Fields:  map[string]string{"email": "email already registered"},
		}
	} else if err != repo.ErrNotFound {
		return model.User{}, errInternal()
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, errInternal()
	}

	user := model.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		return model.User{}, errInternal()
	}

	return user, nil
}

// Loginは認証に成功したらアクセストークンを発行する。
// 失敗理由（メール無し／パスワード不一致）は外から区別できないようにする
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (model.User, TokenOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return model.User{}, TokenOutput{}, NewValidationError("validation error", map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return model.User{}, TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return model.User{}, TokenOutput{}, errInternal()
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return model.User{}, TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, u.clock.Now())
	if err != nil {
		return model.User{}, TokenOutput{}, errInternal()
	}

	return user, TokenOutput{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Logoutはtoken_versionを+1して発行済みJWTを全部無効にする
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return errUnauthorized()
	}
	if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
		if err == repo.ErrNotFound {
			return errNotFound("user")
		}
		return errInternal()
	}
	return nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, errUnauthorized()
	}
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.User{}, errNotFound("user")
	}
	if err != nil {
		return model.User{}, errInternal()
	}
	return user, nil
}
