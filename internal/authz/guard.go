// Package authz holds the pure access-control decisions. Every
// data-mutating or data-revealing operation runs exactly one of these
// policies before touching persistence; there is no default-allow path.
package authz

import (
	"photoshare/internal/auth"
	"photoshare/internal/model"
)

// SelfOrAdmin allows admins to act on any identity and everyone else
// only on their own.
func SelfOrAdmin(claims *auth.Claims, targetID int64) error {
	if claims == nil {
		return model.ErrUnauthorized
	}

	if claims.Role == model.RoleAdmin || claims.UserID == targetID {
		return nil
	}

	return model.ErrForbidden
}

// AdminOnly allows admins and nobody else.
func AdminOnly(claims *auth.Claims) error {
	if claims == nil {
		return model.ErrUnauthorized
	}

	if claims.Role != model.RoleAdmin {
		return model.ErrForbidden
	}

	return nil
}

// SelfOnly allows only the identity itself. Admins get no bypass here;
// password changes go through this policy so an admin cannot rotate
// another account's password without knowing the old one.
func SelfOnly(claims *auth.Claims, targetID int64) error {
	if claims == nil {
		return model.ErrUnauthorized
	}

	if claims.UserID != targetID {
		return model.ErrForbidden
	}

	return nil
}

// DestructiveSelfOrAdmin is SelfOrAdmin with one extra rule applied to
// every destructive administrative action: an admin targeting their own
// account is denied, so an admin cannot lock themselves out through an
// admin path.
func DestructiveSelfOrAdmin(claims *auth.Claims, targetID int64) error {
	if err := SelfOrAdmin(claims, targetID); err != nil {
		return err
	}

	if claims.Role == model.RoleAdmin && claims.UserID == targetID {
		return model.ErrForbidden
	}

	return nil
}
