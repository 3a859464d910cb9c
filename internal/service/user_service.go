package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"photoshare/internal/auth"
	"photoshare/internal/authz"
	"photoshare/internal/model"
	"photoshare/internal/upload"
	"photoshare/pkg/apierror"
)

type UserService struct {
	users   UserStore
	uploads *upload.Pipeline
}

func NewUserService(users UserStore, uploads *upload.Pipeline) *UserService {
	return &UserService{users: users, uploads: uploads}
}

func (s *UserService) Get(ctx context.Context, claims *auth.Claims, id int64) (model.PublicUser, error) {
	if err := authz.SelfOrAdmin(claims, id); err != nil {
		return model.PublicUser{}, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

func (s *UserService) List(ctx context.Context, claims *auth.Claims) ([]model.PublicUser, error) {
	if err := authz.AdminOnly(claims); err != nil {
		return nil, err
	}

	return s.users.List(ctx)
}

// Update applies the caller-supplied fields to an identity. Role changes
// are honored only for admin callers; a new password is re-hashed before
// it reaches the store.
func (s *UserService) Update(ctx context.Context, claims *auth.Claims, id int64, req model.UpdateUserRequest) (model.PublicUser, error) {
	if err := authz.SelfOrAdmin(claims, id); err != nil {
		return model.PublicUser{}, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return model.PublicUser{}, apierror.New("BAD_REQUEST", "username cannot be empty", "username", http.StatusBadRequest)
		}
		user.Username = username
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return model.PublicUser{}, apierror.New("BAD_REQUEST", "invalid email address", "email", http.StatusBadRequest)
		}
		if !strings.EqualFold(email, user.Email) {
			taken, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return model.PublicUser{}, err
			}
			if taken {
				return model.PublicUser{}, model.ErrEmailTaken
			}
		}
		user.Email = email
	}

	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}

	if req.Role != nil && claims.Role == model.RoleAdmin {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !model.ValidRole(role) {
			return model.PublicUser{}, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
		}
		user.Role = role
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return model.PublicUser{}, err
	}

	if req.Password != nil {
		if *req.Password == "" {
			return model.PublicUser{}, apierror.New("BAD_REQUEST", "password cannot be empty", "password", http.StatusBadRequest)
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return model.PublicUser{}, err
		}
		if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
			return model.PublicUser{}, err
		}
	}

	return user.Public(), nil
}

// ChangePassword is strictly self-service: admins get no bypass, and the
// old password must verify before the new hash is written.
func (s *UserService) ChangePassword(ctx context.Context, claims *auth.Claims, id int64, oldPassword string, newPassword string) error {
	if err := authz.SelfOnly(claims, id); err != nil {
		return err
	}

	if newPassword == "" {
		return apierror.New("BAD_REQUEST", "new password is required", "new_password", http.StatusBadRequest)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return apierror.New("BAD_REQUEST", "old password is incorrect", "", http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, id, hash)
}

// Delete removes an identity. An admin deleting their own account is
// denied; stored upload files are left in place when the row goes away.
func (s *UserService) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	if err := authz.DestructiveSelfOrAdmin(claims, id); err != nil {
		return err
	}

	return s.users.Delete(ctx, id)
}

// SetProfilePic validates and stores a new profile picture, then
// attaches it to the identity. A failed attachment leaves the stored
// file orphaned; there is no rollback.
func (s *UserService) SetProfilePic(ctx context.Context, claims *auth.Claims, id int64, pic PicUpload) (string, error) {
	if err := authz.SelfOrAdmin(claims, id); err != nil {
		return "", err
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return "", err
	}

	artifact, err := s.uploads.Store(ctx, upload.PurposeProfilePic, pic.Filename, pic.ContentType, pic.Content)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdateProfilePic(ctx, id, artifact.Ref); err != nil {
		return "", err
	}

	return artifact.Ref, nil
}

// AdminCreate provisions an identity with an explicit role, optionally
// attaching an uploaded profile picture.
func (s *UserService) AdminCreate(ctx context.Context, claims *auth.Claims, req model.AdminCreateUserRequest, pic *PicUpload) (model.PublicUser, error) {
	if err := authz.AdminOnly(claims); err != nil {
		return model.PublicUser{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleUser
	}

	if username == "" || email == "" || req.Password == "" {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "username, email and password are required", "", http.StatusBadRequest)
	}
	if !strings.Contains(email, "@") {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "invalid email address", email, http.StatusBadRequest)
	}
	if !model.ValidRole(role) {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.PublicUser{}, err
	}
	if taken {
		return model.PublicUser{}, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	var picRef *string
	if pic != nil {
		artifact, err := s.uploads.Store(ctx, upload.PurposeProfilePic, pic.Filename, pic.ContentType, pic.Content)
		if err != nil {
			return model.PublicUser{}, err
		}
		picRef = &artifact.Ref
	}

	now := time.Now().UTC()
	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ProfilePic:   picRef,
		Bio:          strings.TrimSpace(req.Bio),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user.ID, err = s.users.Create(ctx, user)
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}
