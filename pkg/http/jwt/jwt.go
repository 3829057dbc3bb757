package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

/**
 * @file: jwt.go
 * @description: principal claims parsing. Tokens are issued by the external
 *               credential service; this package only validates and decodes.
 */

// AuthClaims carries the authenticated principal identity: user id plus the
// tenant partition the principal belongs to (nil = host).
type AuthClaims struct {
	UserId   int64  `json:"userId"`
	TenantId *int64 `json:"tenantId,omitempty"`
	jwt.RegisteredClaims
}

var issuer = "authcenter"

// GenToken generates an access token for the given principal. Used by tests
// and tooling; production tokens come from the credential service.
func GenToken(userId int64, tenantId *int64, secretKey []byte, accessExpire time.Duration) (string, error) {
	claims := &AuthClaims{
		UserId:   userId,
		TenantId: tenantId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpire)),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseToken validates an access token and returns its claims.
func ParseToken(aToken, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
