package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, expired,
// malformed payload. Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleLearner    = "learner"
)

// SessionClaims is the payload of a role session token. The identity id
// travels in the registered Subject claim.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// CapabilityClaims gates the one-time admin registration step.
type CapabilityClaims struct {
	CanRegisterAdmin bool `json:"canRegisterAdmin"`
	jwt.RegisteredClaims
}

func keyFunc(secret []byte) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}
}
