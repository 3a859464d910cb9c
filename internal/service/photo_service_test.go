package service

import (
	"context"
	"image/jpeg"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"photoshare/internal/auth"
	"photoshare/internal/model"
	"photoshare/internal/upload"
)

func newPhotoService(t *testing.T, photos *fakePhotoStore) *PhotoService {
	t.Helper()

	root := t.TempDir()
	uploads, err := upload.New(root, filepath.Join(root, "thumbnails"))
	require.NoError(t, err)
	return NewPhotoService(photos, uploads)
}

func TestPhotoUpload(t *testing.T) {
	photos := newFakePhotoStore()
	svc := newPhotoService(t, photos)
	claims := &auth.Claims{UserID: 7, Role: model.RoleUser}

	photo, err := svc.Upload(context.Background(), claims, PicUpload{
		Filename:    "sunset.png",
		ContentType: "image/png",
		Content:     pngBytes(t),
	}, "  golden hour  ")
	require.NoError(t, err)
	require.Equal(t, int64(7), photo.UserID)
	require.Equal(t, "golden hour", photo.Caption)
	require.True(t, strings.HasPrefix(photo.ImageURL, upload.URLPrefix+"/photos/"))

	stored, err := photos.FindByID(context.Background(), photo.ID)
	require.NoError(t, err)
	require.Equal(t, photo.ImageURL, stored.ImageURL)
}

func TestPhotoUploadRequiresAuth(t *testing.T) {
	photos := newFakePhotoStore()
	svc := newPhotoService(t, photos)

	_, err := svc.Upload(context.Background(), nil, PicUpload{
		Filename:    "sunset.png",
		ContentType: "image/png",
		Content:     pngBytes(t),
	}, "")
	require.ErrorIs(t, err, model.ErrUnauthorized)
	require.Equal(t, 0, photos.count())
}

func TestPhotoUploadRejectsNonImage(t *testing.T) {
	photos := newFakePhotoStore()
	svc := newPhotoService(t, photos)
	claims := &auth.Claims{UserID: 7, Role: model.RoleUser}

	_, err := svc.Upload(context.Background(), claims, PicUpload{
		Filename:    "malware.exe",
		ContentType: "application/octet-stream",
		Content:     strings.NewReader("MZ"),
	}, "")
	require.ErrorIs(t, err, model.ErrInvalidContentType)
	require.Equal(t, 0, photos.count())
}

func TestListMineReturnsOnlyOwnPhotos(t *testing.T) {
	photos := newFakePhotoStore()
	svc := newPhotoService(t, photos)

	alice := &auth.Claims{UserID: 1, Role: model.RoleUser}
	bob := &auth.Claims{UserID: 2, Role: model.RoleUser}

	for _, claims := range []*auth.Claims{alice, alice, bob} {
		_, err := svc.Upload(context.Background(), claims, PicUpload{
			Filename:    "p.png",
			ContentType: "image/png",
			Content:     pngBytes(t),
		}, "")
		require.NoError(t, err)
	}

	mine, err := svc.ListMine(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, p := range mine {
		require.Equal(t, int64(1), p.UserID)
	}
}

func TestThumbnailOwnership(t *testing.T) {
	photos := newFakePhotoStore()
	svc := newPhotoService(t, photos)

	owner := &auth.Claims{UserID: 1, Role: model.RoleUser}
	other := &auth.Claims{UserID: 2, Role: model.RoleUser}
	admin := &auth.Claims{UserID: 3, Role: model.RoleAdmin}

	photo, err := svc.Upload(context.Background(), owner, PicUpload{
		Filename:    "p.png",
		ContentType: "image/png",
		Content:     pngBytes(t),
	}, "")
	require.NoError(t, err)

	// A non-owner gets the same not-found as a missing id, so the
	// response never reveals whether the photo exists.
	_, _, err = svc.Thumbnail(context.Background(), other, photo.ID, 64)
	require.ErrorIs(t, err, model.ErrPhotoNotFound)

	f, info, err := svc.Thumbnail(context.Background(), owner, photo.ID, 64)
	require.NoError(t, err)
	defer f.Close()
	require.Positive(t, info.Size())

	// The source is 8x8 and thumbnails never upscale.
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 8, img.Bounds().Dx())

	f2, _, err := svc.Thumbnail(context.Background(), admin, photo.ID, 64)
	require.NoError(t, err)
	f2.Close()

	_, _, err = svc.Thumbnail(context.Background(), owner, 999, 64)
	require.ErrorIs(t, err, model.ErrPhotoNotFound)
}
