package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CapabilityTTL bounds the window between activation-key verification and
// admin signup. Failing either step just means restarting the handshake;
// no server-side state is kept.
const CapabilityTTL = 15 * time.Minute

func IssueAdminCapability(secret []byte, ttl time.Duration) (string, error) {
	claims := CapabilityClaims{
		CanRegisterAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func CapabilityClaimsFromToken(tokenStr string, secret []byte) (*CapabilityClaims, error) {
	var claims CapabilityClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, keyFunc(secret))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.CanRegisterAdmin {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
