package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the full persisted identity record. PasswordHash is excluded
// from JSON serialization; handlers only ever emit PublicUser.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ProfilePic   *string   `json:"profile_pic"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the redacted identity view returned by every read path.
type PublicUser struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ProfilePic *string `json:"profile_pic"`
	Bio        string  `json:"bio"`
}

// Public strips everything that must never leave the process, in
// particular the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		ProfilePic: u.ProfilePic,
		Bio:        u.Bio,
	}
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
