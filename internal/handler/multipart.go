package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"photoshare/internal/service"
	"photoshare/pkg/apierror"
)

// partFile wraps one uploaded multipart file part together with its
// declared metadata.
type partFile struct {
	file   multipart.File
	header *multipart.FileHeader
}

func (p *partFile) upload() service.PicUpload {
	return service.PicUpload{
		Filename:    p.header.Filename,
		ContentType: p.header.Header.Get("Content-Type"),
		Content:     p.file,
	}
}

func (p *partFile) close() {
	_ = p.file.Close()
}

// filePart parses the multipart body, bounded by maxSize, and returns
// the named file part. A missing part returns (nil, nil) so callers
// decide whether the file is required.
func filePart(w http.ResponseWriter, r *http.Request, field string, maxSize int64) (*partFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		if isPayloadTooLarge(err) {
			return nil, apierror.New("PAYLOAD_TOO_LARGE", "request body exceeds MAX_UPLOAD_SIZE", "MAX_UPLOAD_SIZE", http.StatusRequestEntityTooLarge)
		}
		return nil, apierror.New("BAD_REQUEST", "invalid multipart body", "", http.StatusBadRequest)
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apierror.New("BAD_REQUEST", "invalid multipart body", field, http.StatusBadRequest)
	}

	return &partFile{file: file, header: header}, nil
}

// formValue reads an optional multipart form field, reporting whether it
// was present at all so absent and empty stay distinguishable.
func formValue(r *http.Request, field string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}

	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "request body too large")
}
