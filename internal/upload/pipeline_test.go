package upload

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"photoshare/internal/model"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	p, err := New(t.TempDir(), "")
	require.NoError(t, err)
	return p
}

func TestStoreRejectsNonImageContentType(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	_, err := p.Store(context.Background(), PurposePhoto, "notes.txt", "text/plain", strings.NewReader("hello"))
	require.ErrorIs(t, err, model.ErrInvalidContentType)

	// The rejection happens before any write.
	entries, err := os.ReadDir(filepath.Join(p.Root(), string(PurposePhoto)))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStoreAcceptsImage(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	artifact, err := p.Store(context.Background(), PurposePhoto, "cat.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(artifact.Ref, "/uploads/photos/photo-"))
	require.True(t, strings.HasSuffix(artifact.StoredName, ".png"))
	require.Equal(t, int64(len("png-bytes")), artifact.Size)

	resolved, err := p.Resolve(artifact.Ref)
	require.NoError(t, err)
	content, err := os.ReadFile(resolved)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(content))
}

func TestStoreProfilePicNamespace(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	artifact, err := p.Store(context.Background(), PurposeProfilePic, "me.JPG", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(artifact.Ref, "/uploads/profile_pics/profile-"))
	require.True(t, strings.HasSuffix(artifact.StoredName, ".jpg"))
}

func TestStoreNamesNeverCollide(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		artifact, err := p.Store(context.Background(), PurposePhoto, "same.png", "image/png", strings.NewReader("x"))
		require.NoError(t, err)

		_, dup := seen[artifact.StoredName]
		require.False(t, dup, "stored name reused: %s", artifact.StoredName)
		seen[artifact.StoredName] = struct{}{}
	}
}

func TestStoreDropsSuspiciousExtension(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	artifact, err := p.Store(context.Background(), PurposePhoto, "weird.p!g", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	require.False(t, strings.Contains(artifact.StoredName, "!"))

	artifact, err = p.Store(context.Background(), PurposePhoto, "noextension", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotContains(t, artifact.StoredName, ".")
}

func TestResolveRejectsTraversal(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	for _, ref := range []string{"/uploads/../../etc/passwd", "../secret", "/uploads/photos/../../../x"} {
		resolved, err := p.Resolve(ref)
		if err == nil {
			require.True(t, strings.HasPrefix(resolved, p.Root()), "ref %q escaped root to %q", ref, resolved)
		}
	}
}

func TestThumbnailFromStoredImage(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 32))))

	artifact, err := p.Store(context.Background(), PurposePhoto, "wide.png", "image/png", &buf)
	require.NoError(t, err)

	thumb, info, err := p.Thumbnail(artifact.Ref, 16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = thumb.Close() })
	require.Greater(t, info.Size(), int64(0))

	decoded, _, err := image.Decode(thumb)
	require.NoError(t, err)
	require.Equal(t, 16, decoded.Bounds().Dx())
	require.Equal(t, 8, decoded.Bounds().Dy())
}

func TestDefaultThumbnailRootOutsideUploadRoot(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	// Derived files must never land under the served upload root.
	require.False(t, strings.HasPrefix(p.thumbnailRoot, p.root+string(filepath.Separator)))
	require.NotEqual(t, p.root, p.thumbnailRoot)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	artifact, err := p.Store(context.Background(), PurposePhoto, "p.png", "image/png", &buf)
	require.NoError(t, err)

	thumb, _, err := p.Thumbnail(artifact.Ref, 8)
	require.NoError(t, err)
	require.NoError(t, thumb.Close())

	_, err = os.Stat(filepath.Join(p.root, ".thumbnails"))
	require.True(t, os.IsNotExist(err))
}

func TestThumbnailMissingSource(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	_, _, err := p.Thumbnail("/uploads/photos/photo-0-deadbeef.png", 64)
	require.ErrorIs(t, err, model.ErrPhotoNotFound)
}
