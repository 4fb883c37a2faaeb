// file: utils/jwt.go
package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hyperion/models"
)

var jwtSecret = []byte(defaultSecret())

func defaultSecret() string {
	if s := os.Getenv("HYPERION_JWT_SECRET"); s != "" {
		return s
	}
	return "a-very-secure-secret-that-should-be-in-config-file"
}

// Claims is the auth context the core consumes: who the caller is, which
// school they belong to and which groups they hold. Authentication itself
// lives outside this module; we only verify and read the token.
type Claims struct {
	UserID   uint32             `json:"user_id"`
	SchoolID uint32             `json:"school_id"`
	Groups   []models.GroupType `json:"groups"`
	jwt.RegisteredClaims
}

// HasGroup reports whether the token carries the given group.
func (c *Claims) HasGroup(group models.GroupType) bool {
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func GenerateToken(userID, schoolID uint32, groups []models.GroupType) (string, error) {
	claims := Claims{
		UserID:   userID,
		SchoolID: schoolID,
		Groups:   groups,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
