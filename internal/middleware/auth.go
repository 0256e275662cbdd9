package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"bauhaus-reports-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims
type Claims struct {
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
	jwt.RegisteredClaims
}

// SessionUser is the authenticated identity stored in the request context.
type SessionUser struct {
	Usuario string
	Rol     string
}

// AuthRequired middleware validates JWT token
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Token de acceso requerido",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Formato de autorización inválido",
			})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Token inválido o expirado",
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Token inválido o expirado",
			})
			c.Abort()
			return
		}

		c.Set("user", SessionUser{
			Usuario: claims.Usuario,
			Rol:     claims.Rol,
		})

		c.Next()
	}
}

// RequireRole middleware checks if user has required role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUserFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Autenticación requerida",
			})
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Rol == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Message: "Permisos insuficientes",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin middleware checks if user is admin
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// GetUserFromContext extracts user from gin context
func GetUserFromContext(c *gin.Context) (*SessionUser, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}

	sessionUser, ok := user.(SessionUser)
	return &sessionUser, ok
}
