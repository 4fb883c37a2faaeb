// file: middlewares/auth.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hyperion/models"
	"hyperion/utils"
)

const claimsKey = "auth_claims"

// JWTAuthMiddleware rejects requests without a valid bearer token and puts
// the parsed claims into the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "Missing Authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			utils.Error(c, http.StatusUnauthorized, "Malformed Authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GroupAuthMiddleware requires the caller to hold at least one of the given
// groups. Competition admins pass every group gate.
func GroupAuthMiddleware(requiredGroups ...models.GroupType) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			utils.Error(c, http.StatusUnauthorized, "Missing auth context")
			c.Abort()
			return
		}

		hasPermission := claims.HasGroup(models.GroupCompetitionAdmin)
		for _, group := range requiredGroups {
			if claims.HasGroup(group) {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			utils.Error(c, http.StatusForbidden, "Insufficient group membership")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims returns the parsed token claims, or nil outside an
// authenticated route.
func GetClaims(c *gin.Context) *utils.Claims {
	claimsAny, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := claimsAny.(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}

// IsAdmin reports whether the caller is a competition admin.
func IsAdmin(c *gin.Context) bool {
	claims := GetClaims(c)
	return claims != nil && claims.HasGroup(models.GroupCompetitionAdmin)
}

// IsSchoolsBDS reports whether the caller holds the schools_bds group.
func IsSchoolsBDS(c *gin.Context) bool {
	claims := GetClaims(c)
	return claims != nil && claims.HasGroup(models.GroupSchoolsBDS)
}
