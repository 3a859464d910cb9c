package handler

import (
	"net/http"

	"photoshare/internal/authz"
	"photoshare/internal/model"
	"photoshare/internal/service"
)

// AdminHandler serves the administrative console routes. Create and
// Update accept multipart bodies so an optional profile_pic file part
// can ride along with the form fields.
type AdminHandler struct {
	service       *service.UserService
	maxUploadSize int64
}

func NewAdminHandler(service *service.UserService, maxUploadSize int64) *AdminHandler {
	return &AdminHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	// The admin console is admin-only even where the self-service
	// route would allow the owner.
	if err := authz.AdminOnly(claims); err != nil {
		writeError(w, err)
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

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	pic, err := filePart(w, r, "profile_pic", h.maxUploadSize)
	if err != nil {
		writeError(w, err)
		return
	}

	req := model.AdminCreateUserRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
		Bio:      r.FormValue("bio"),
	}

	var picUpload *service.PicUpload
	if pic != nil {
		defer pic.close()
		u := pic.upload()
		picUpload = &u
	}

	user, err := h.service.AdminCreate(r.Context(), claims, req, picUpload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	if err := authz.AdminOnly(claims); err != nil {
		writeError(w, err)
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
	if pic != nil {
		defer pic.close()
	}

	var req model.UpdateUserRequest
	if v, present := formValue(r, "username"); present {
		req.Username = &v
	}
	if v, present := formValue(r, "email"); present {
		req.Email = &v
	}
	if v, present := formValue(r, "bio"); present {
		req.Bio = &v
	}
	if v, present := formValue(r, "role"); present {
		req.Role = &v
	}
	if v, present := formValue(r, "password"); present {
		req.Password = &v
	}

	user, err := h.service.Update(r.Context(), claims, id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	if pic != nil {
		ref, err := h.service.SetProfilePic(r.Context(), claims, id, pic.upload())
		if err != nil {
			writeError(w, err)
			return
		}
		user.ProfilePic = &ref
	}

	writeSuccess(w, http.StatusOK, user)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrError(w, r)
	if !ok {
		return
	}

	if err := authz.AdminOnly(claims); err != nil {
		writeError(w, err)
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
