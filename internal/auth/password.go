package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for every password hash in the
// system. Changing it only affects hashes created afterwards; existing
// digests keep verifying because bcrypt embeds the cost in the digest.
const bcryptCost = 10

// HashPassword produces a salted bcrypt digest. The salt is randomized
// per call, so two hashes of the same plaintext never compare equal.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the digest. A
// malformed digest verifies as false rather than surfacing an error;
// callers treat every mismatch the same way.
func VerifyPassword(plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
