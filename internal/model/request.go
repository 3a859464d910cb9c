package model

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	// Password, when present, is re-hashed before persisting.
	Password *string `json:"password"`
	// Role is honored only when the caller is an admin.
	Role *string `json:"role"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// AdminCreateUserRequest arrives as multipart form fields so an optional
// profile_pic file part can ride along.
type AdminCreateUserRequest struct {
	Username string
	Email    string
	Password string
	Role     string
	Bio      string
}
