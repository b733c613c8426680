package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/infra/cache"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/repo"
	"github.com/Renishchandera/gameforge-ai/internal/pkg/utils/secrets"
	"github.com/Renishchandera/gameforge-ai/internal/pkg/utils/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Refresh exchanges a live refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout revokes the refresh session. Unknown or malformed tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type AuthOptions struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Pepper        string
	HashParams    secrets.Params
}

func AuthOptionsFromConfig(cfg *config.Config) AuthOptions {
	return AuthOptions{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
		Pepper:        cfg.Auth.PasswordPepper,
		HashParams:    secrets.DefaultParams,
	}
}

type authService struct {
	users    repo.UserRepo
	sessions cache.SessionStore
	opts     AuthOptions
	log      *zap.Logger
}

func NewAuthService(users repo.UserRepo, sessions cache.SessionStore, opts AuthOptions, log *zap.Logger) AuthService {
	return &authService{users: users, sessions: sessions, opts: opts, log: log}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

func normalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeIdentity(in.Email)
	username := normalizeIdentity(in.Username)
	if email == "" || username == "" || in.Password == "" {
		return nil, ErrRegisterFieldsRequired
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := secrets.HashPasswordWith(s.opts.HashParams, in.Password, s.opts.Pepper)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{Email: email, Username: username, PasswordHashPHC: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			if taken, _ := s.users.ExistsByEmail(ctx, email); taken {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(ctx, u)
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normalizeIdentity(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrLoginFieldsRequired
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := secrets.VerifyPassword(in.Password, s.opts.Pepper, u.PasswordHashPHC)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if secrets.NeedsRehash(u.PasswordHashPHC, s.opts.HashParams) {
		s.rehash(ctx, u, in.Password)
	}
	return s.issue(ctx, u)
}

// rehash upgrades a stored hash to the current cost settings. Failures only log.
func (s *authService) rehash(ctx context.Context, u *model.User, password string) {
	phc, err := secrets.HashPasswordWith(s.opts.HashParams, password, s.opts.Pepper)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, u.ID, phc)
	}
	if err != nil {
		s.log.Warn("password rehash failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return
	}
	u.PasswordHashPHC = phc
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}
	claims, err := parseClaims(refreshToken, s.opts.RefreshSecret)
	if err != nil || claims.ID == "" {
		return "", ErrRefreshInvalid
	}

	userID, err := s.sessions.Lookup(ctx, s.sessionKey(claims.ID))
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return "", ErrRefreshInvalid
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if userID != claims.Subject {
		return "", ErrRefreshInvalid
	}
	return s.signAccess(claims.Subject)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := parseClaims(refreshToken, s.opts.RefreshSecret, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, s.sessionKey(claims.ID)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, ErrNoToken
	}
	claims, err := parseClaims(accessToken, s.opts.AccessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *authService) issue(ctx context.Context, u *model.User) (*AuthResult, error) {
	access, err := s.signAccess(u.ID.String())
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	now := time.Now()
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   u.ID.String(),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.RefreshTTL)),
	}).SignedString([]byte(s.opts.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.sessions.Save(ctx, s.sessionKey(jti), u.ID.String(), s.opts.RefreshTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &AuthResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signAccess(subject string) (string, error) {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.AccessTTL)),
	}).SignedString([]byte(s.opts.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// sessionKey stores a digest of the jti, never the jti itself.
func (s *authService) sessionKey(jti string) string {
	return tokens.HMAC256Hex(s.opts.RefreshSecret, jti)
}

func parseClaims(raw, secret string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
