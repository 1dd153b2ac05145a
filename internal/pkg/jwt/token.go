package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the caller identity the dispatch service trusts
type Claims struct {
	UserID   uuid.UUID   `json:"user_id"`
	Role     models.Role `json:"role"`
	Verified bool        `json:"verified"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given user
func GenerateToken(userID uuid.UUID, role models.Role, verified bool, cfg *models.Config) (string, int64, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWT.Expiration) * time.Minute)

	claims := Claims{
		UserID:   userID,
		Role:     role,
		Verified: verified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.JWT.Issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expirationTime.Unix(), nil
}

// ValidateToken checks signature and expiry and returns the claims
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	switch claims.Role {
	case models.RoleCustomer, models.RoleProvider:
	default:
		return nil, fmt.Errorf("%w: unsupported role %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}
