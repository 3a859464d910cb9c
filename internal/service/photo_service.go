package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"photoshare/internal/auth"
	"photoshare/internal/authz"
	"photoshare/internal/model"
	"photoshare/internal/upload"
)

type PhotoService struct {
	photos  PhotoStore
	uploads *upload.Pipeline
}

func NewPhotoService(photos PhotoStore, uploads *upload.Pipeline) *PhotoService {
	return &PhotoService{photos: photos, uploads: uploads}
}

// Upload runs the picture through the validation pipeline and attaches
// the stored reference to a new photo record owned by the caller. If
// record creation fails the stored file is left orphaned; that matches
// the historical behavior and is documented rather than rolled back.
func (s *PhotoService) Upload(ctx context.Context, claims *auth.Claims, pic PicUpload, caption string) (model.Photo, error) {
	if claims == nil {
		return model.Photo{}, model.ErrUnauthorized
	}

	artifact, err := s.uploads.Store(ctx, upload.PurposePhoto, pic.Filename, pic.ContentType, pic.Content)
	if err != nil {
		return model.Photo{}, err
	}

	photo := model.Photo{
		UserID:    claims.UserID,
		ImageURL:  artifact.Ref,
		Caption:   strings.TrimSpace(caption),
		CreatedAt: time.Now().UTC(),
	}

	photo.ID, err = s.photos.Create(ctx, photo)
	if err != nil {
		return model.Photo{}, err
	}

	return photo, nil
}

// ListMine returns the caller's own photos.
func (s *PhotoService) ListMine(ctx context.Context, claims *auth.Claims) ([]model.Photo, error) {
	if claims == nil {
		return nil, model.ErrUnauthorized
	}

	return s.photos.ListByUserID(ctx, claims.UserID)
}

// ListByUser is the public listing variant. The router only exposes it
// when PUBLIC_PHOTO_LISTING is enabled.
func (s *PhotoService) ListByUser(ctx context.Context, userID int64) ([]model.Photo, error) {
	return s.photos.ListByUserID(ctx, userID)
}

// Thumbnail serves a cached scaled rendition of a photo the caller owns
// (or any photo, for admins). A denied caller gets the same not-found
// error as a missing id, so the endpoint never reveals whether a photo
// id exists.
func (s *PhotoService) Thumbnail(ctx context.Context, claims *auth.Claims, photoID int64, size int) (*os.File, os.FileInfo, error) {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}

	if err := authz.SelfOrAdmin(claims, photo.UserID); err != nil {
		if errors.Is(err, model.ErrForbidden) {
			return nil, nil, model.ErrPhotoNotFound
		}
		return nil, nil, err
	}

	return s.uploads.Thumbnail(photo.ImageURL, size)
}
