package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"photoshare/internal/auth"
	"photoshare/internal/middleware"
	"photoshare/internal/model"
	"photoshare/internal/service"
	"photoshare/pkg/apierror"
)

type UserHandler struct {
	service       *service.UserService
	maxUploadSize int64
}

func NewUserHandler(service *service.UserService, maxUploadSize int64) *UserHandler {
	return &UserHandler{service: service, maxUploadSize: maxUploadSize}
}

func userIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.New("BAD_REQUEST", "invalid user id", raw, http.StatusBadRequest)
	}
	return id, nil
}

func claimsOrError(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	users, err := h.service.List(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.UserList{Users: users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Get(r.Context(), claims, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	user, err := h.service.Update(r.Context(), claims, id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims, id, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": true})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), claims, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *UserHandler) UploadProfilePic(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	pic, err := filePart(w, r, "profile_pic", h.maxUploadSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if pic == nil {
		writeError(w, apierror.New("BAD_REQUEST", "profile_pic file part is required", "profile_pic", http.StatusBadRequest))
		return
	}
	defer pic.close()

	ref, err := h.service.SetProfilePic(r.Context(), claims, id, pic.upload())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"profile_pic": ref})
}
