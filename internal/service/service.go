// Package service orchestrates the credential, authorization, and
// upload cores over the persistence layer. Every operation takes the
// caller's verified claims and runs its access policy before any
// repository call.
package service

import (
	"context"
	"io"

	"photoshare/internal/model"
)

// UserStore is the persistence boundary for identity records.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) (int64, error)
	Update(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateProfilePic(ctx context.Context, userID int64, ref string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.PublicUser, error)
}

// PhotoStore is the persistence boundary for photo records.
type PhotoStore interface {
	Create(ctx context.Context, p model.Photo) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Photo, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Photo, error)
}

// PicUpload carries one multipart file part into the upload pipeline.
type PicUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}
