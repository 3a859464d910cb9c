// Package upload validates and persists client-submitted binary content.
// Each upload moves Received -> Validated -> Stored, or is rejected on
// the declared content type. The caller attaches the returned reference
// to its owning record; if that attachment fails the stored file stays
// behind (no rollback).
package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/model"
)

// URLPrefix is the static path prefix under which stored artifacts are
// served back to clients.
const URLPrefix = "/uploads"

// Purpose selects the storage namespace for an upload.
type Purpose string

const (
	PurposeProfilePic Purpose = "profile_pics"
	PurposePhoto      Purpose = "photos"
)

func (p Purpose) filePrefix() string {
	if p == PurposeProfilePic {
		return "profile"
	}
	return "photo"
}

// Artifact describes a stored upload.
type Artifact struct {
	Ref         string
	StoredName  string
	ContentType string
	Size        int64
}

// Pipeline writes uploads under a root directory, one subdirectory per
// purpose. Stored names embed a nanosecond timestamp plus a random
// component, so concurrent uploads never collide and no locking is
// needed.
type Pipeline struct {
	root          string
	thumbnailRoot string
}

func New(root string, thumbnailRoot string) (*Pipeline, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}

	for _, purpose := range []Purpose{PurposeProfilePic, PurposePhoto} {
		if err := os.MkdirAll(filepath.Join(absRoot, string(purpose)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload namespace %s: %w", purpose, err)
		}
	}

	// The cache lives outside the upload root so nothing under the
	// served static prefix holds derived files.
	if strings.TrimSpace(thumbnailRoot) == "" {
		thumbnailRoot = absRoot + "-thumbnails"
	}
	if err := os.MkdirAll(thumbnailRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail root: %w", err)
	}

	return &Pipeline{root: absRoot, thumbnailRoot: thumbnailRoot}, nil
}

// Store validates the declared content type and writes the content under
// the purpose's namespace, returning the artifact's stable reference.
// Only the declared MIME type is checked, not the actual bytes.
func (p *Pipeline) Store(_ context.Context, purpose Purpose, originalName string, declaredType string, r io.Reader) (Artifact, error) {
	if !isImageContentType(declaredType) {
		return Artifact{}, fmt.Errorf("%w: %s", model.ErrInvalidContentType, declaredType)
	}

	ext := safeExtension(originalName)

	// O_EXCL guards the collision-free naming invariant: if two uploads
	// ever race onto the same name, the loser re-rolls its random
	// component instead of overwriting.
	var file *os.File
	var storedName string
	for attempt := 0; ; attempt++ {
		storedName = fmt.Sprintf("%s-%d-%s%s",
			purpose.filePrefix(), time.Now().UTC().UnixNano(), uuid.NewString()[:8], ext)

		f, err := os.OpenFile(filepath.Join(p.root, string(purpose), storedName),
			os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			file = f
			break
		}
		if !os.IsExist(err) || attempt >= 3 {
			return Artifact{}, fmt.Errorf("create upload file: %w", err)
		}
	}

	written, err := io.Copy(file, r)
	closeErr := file.Close()
	if err != nil {
		// A partially written file may remain; mid-upload aborts are not
		// atomic.
		return Artifact{}, fmt.Errorf("write upload content: %w", err)
	}
	if closeErr != nil {
		return Artifact{}, fmt.Errorf("close upload file: %w", closeErr)
	}

	return Artifact{
		Ref:         path.Join(URLPrefix, string(purpose), storedName),
		StoredName:  storedName,
		ContentType: strings.ToLower(strings.TrimSpace(declaredType)),
		Size:        written,
	}, nil
}

// Root returns the absolute directory that backs the /uploads static
// prefix.
func (p *Pipeline) Root() string {
	return p.root
}

// Resolve maps a stored reference back to its absolute filesystem path,
// refusing anything that escapes the upload root.
func (p *Pipeline) Resolve(ref string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(ref, URLPrefix)), "/")
	resolved := filepath.Join(p.root, filepath.FromSlash(rel))

	if resolved != p.root && !strings.HasPrefix(resolved, p.root+string(filepath.Separator)) {
		return "", model.ErrInvalidInput
	}

	return resolved, nil
}

func isImageContentType(declared string) bool {
	base, _, err := mime.ParseMediaType(declared)
	if err != nil {
		base = strings.ToLower(strings.TrimSpace(declared))
	}

	return strings.HasPrefix(base, "image/")
}

// safeExtension keeps the original extension when it looks like a plain
// dotted suffix and drops anything suspicious. Stored names are fully
// server-generated, so this is the only part of the client filename that
// survives.
func safeExtension(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}

	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}

	return ext
}
