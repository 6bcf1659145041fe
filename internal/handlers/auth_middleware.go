package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/services"
	"github.com/jrc-public-school/school-service/internal/utils"
)

// JWTAuthMiddleware authenticates requests against the service's own
// session tokens.
type JWTAuthMiddleware struct {
	tokens *auth.TokenManager
	logger utils.Logger
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// AuthMiddleware extracts and verifies the Bearer token, then stores
// the authenticated actor in the request context. A missing, malformed,
// expired or otherwise invalid token always produces the same 401 body
// so clients cannot distinguish the failure modes.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.abortUnauthenticated(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			m.abortUnauthenticated(c)
			return
		}

		claims, err := m.tokens.VerifyToken(tokenParts[1])
		if err != nil {
			m.abortUnauthenticated(c)
			return
		}

		actor := services.Actor{Role: claims.Role}
		if claims.Role == auth.RoleStudent {
			studentID, err := strconv.ParseUint(claims.StudentID, 10, 32)
			if err != nil || studentID == 0 {
				m.abortUnauthenticated(c)
				return
			}
			actor.StudentID = uint(studentID)
		}

		c.Set("actor", actor)
		c.Set("user_role", claims.Role)
		c.Set("subject", claims.Subject)

		c.Next()
	}
}

// RequireRoleMiddleware rejects actors whose role is not in the allowed
// set. Must run after AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			m.abortForbidden(c)
			return
		}

		role, ok := userRole.(auth.Role)
		if !ok {
			m.abortForbidden(c)
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		m.abortForbidden(c)
	}
}

func (m *JWTAuthMiddleware) abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Success: false,
		Message: "Authentication required",
	})
	c.Abort()
}

func (m *JWTAuthMiddleware) abortForbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorResponse{
		Success: false,
		Message: "Insufficient permissions",
	})
	c.Abort()
}

// GetActorFromContext extracts the authenticated actor set by
// AuthMiddleware. The bool is false on public routes.
func GetActorFromContext(c *gin.Context) (services.Actor, bool) {
	value, exists := c.Get("actor")
	if !exists {
		return services.Actor{}, false
	}

	actor, ok := value.(services.Actor)
	return actor, ok
}
