package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"photoshare/internal/model"
	"photoshare/internal/service"
	"photoshare/pkg/apierror"
)

type PhotoHandler struct {
	service       *service.PhotoService
	maxUploadSize int64
}

func NewPhotoHandler(service *service.PhotoService, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{service: service, maxUploadSize: maxUploadSize}
}

func photoIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.New("BAD_REQUEST", "invalid photo id", raw, http.StatusBadRequest)
	}
	return id, nil
}

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	pic, err := filePart(w, r, "photo", h.maxUploadSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if pic == nil {
		writeError(w, apierror.New("BAD_REQUEST", "photo file part is required", "photo", http.StatusBadRequest))
		return
	}
	defer pic.close()

	photo, err := h.service.Upload(r.Context(), claims, pic.upload(), r.FormValue("caption"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, photo)
}

func (h *PhotoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	photos, err := h.service.ListMine(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PhotoList{Photos: photos})
}

// ListByUser is the optional public listing; the router only mounts it
// when the operator enables PUBLIC_PHOTO_LISTING.
func (h *PhotoHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	photos, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PhotoList{Photos: photos})
}

func (h *PhotoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	id, err := photoIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	size := 256
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			size = parsed
		}
	}
	if size < 32 {
		size = 32
	}
	if size > 1024 {
		size = 1024
	}

	file, info, err := h.service.Thumbnail(r.Context(), claims, id, size)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
