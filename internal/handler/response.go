package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"photoshare/internal/model"
	"photoshare/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeError maps service errors onto the response taxonomy. Token
// failures deliberately collapse into one unauthenticated message, and
// anything unclassified is logged server-side and surfaced as a generic
// internal error.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	case errors.Is(err, model.ErrPhotoNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Photo not found"
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Email already registered"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenSignatureInvalid),
		errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "missing or invalid token"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	case errors.Is(err, model.ErrInvalidContentType):
		status = http.StatusUnsupportedMediaType
		body.Code = "UNSUPPORTED_TYPE"
		body.Message = "Only image uploads are accepted"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
