package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"photoshare/internal/auth"
	"photoshare/internal/model"
	"photoshare/pkg/apierror"
)

type AuthService struct {
	users  UserStore
	tokens *auth.TokenService
}

func NewAuthService(users UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new identity and logs it in. Self-registration
// always produces a plain user; only the admin path can assign roles.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return model.LoginResponse{}, apierror.New("BAD_REQUEST", "username, email and password are required", "", http.StatusBadRequest)
	}
	if !strings.Contains(email, "@") {
		return model.LoginResponse{}, apierror.New("BAD_REQUEST", "invalid email address", email, http.StatusBadRequest)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if taken {
		return model.LoginResponse{}, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.LoginResponse{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Bio:          strings.TrimSpace(req.Bio),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user.ID, err = s.users.Create(ctx, user)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues a session token. An unknown
// email and a wrong password produce the same error so the response
// never reveals which part failed.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.LoginResponse{}, model.ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return model.LoginResponse{}, model.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the caller's own redacted identity.
func (s *AuthService) Me(ctx context.Context, claims *auth.Claims) (model.PublicUser, error) {
	if claims == nil {
		return model.PublicUser{}, model.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

func (s *AuthService) issue(user model.User) (model.LoginResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user.Public(),
	}, nil
}
