package utils

import "golang.org/x/crypto/bcrypt"

// VerifyPassword reports whether the plain admin password matches the
// bcrypt hash configured via ADMIN_PASSWORD_HASH. The service never
// hashes passwords itself; the hash is provisioned out of band.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
