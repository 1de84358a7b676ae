package utils

import (
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued at login. The subject is the user id; the
// remaining fields describe the caller's role and scope.
type Claims struct {
	Role       domain.Role `json:"role"`
	ProducerID string      `json:"producerID,omitempty"`
	BranchIDs  []string    `json:"branchIDs,omitempty"`
	jwt.RegisteredClaims
}

// Caller converts the claims into the explicit caller context.
func (c *Claims) Caller() domain.Caller {
	return domain.Caller{
		UserID:     c.Subject,
		Role:       c.Role,
		ProducerID: c.ProducerID,
		BranchIDs:  c.BranchIDs,
	}
}

// NewClaims builds the claims for a user.
func NewClaims(user domain.User, issuer string, issuedAt time.Time, expiryDuration time.Duration) Claims {
	caller := user.Caller()
	return Claims{
		Role:       caller.Role,
		ProducerID: caller.ProducerID,
		BranchIDs:  caller.BranchIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
}

// SignJWT signs the claims with HS256.
func SignJWT(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateJWT generates a new JWT token for the user and returns it with its expiry.
func GenerateJWT(user domain.User, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	claims := NewClaims(user, issuer, now, expiryDuration)
	signed, err := SignJWT(claims, secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the Claims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err // This will include errors like token expired, signature invalid, etc.
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
