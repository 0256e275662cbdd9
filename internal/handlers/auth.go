package handlers

import (
	"net/http"
	"time"

	"bauhaus-reports-api/internal/config"
	"bauhaus-reports-api/internal/middleware"
	"bauhaus-reports-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// errCredenciales is the exact message the dashboard shows on a failed
// login.
const errCredenciales = "Usuario o contraseña incorrectos"

type AuthHandler struct {
	Config *config.Config
	log    zerolog.Logger
}

func NewAuthHandler(cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		Config: cfg,
		log:    log,
	}
}

// Login validates the configured operator credential pair and issues a
// signed token. Any other pair fails with the literal Spanish message and
// no token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Formato de solicitud inválido",
		})
		return
	}

	if req.Usuario != h.Config.Auth.Usuario {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: errCredenciales,
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.Config.Auth.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: errCredenciales,
		})
		return
	}

	token, err := h.generateToken(req.Usuario)
	if err != nil {
		h.log.Error().Err(err).Msg("no se pudo firmar el token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "No se pudo generar el token",
		})
		return
	}

	h.log.Info().Str("usuario", req.Usuario).Msg("inicio de sesión")

	c.JSON(http.StatusOK, models.LoginResponse{
		Usuario: req.Usuario,
		Rol:     "admin",
		Token:   token,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sesión cerrada",
	})
}

// ValidateToken validates the JWT token and returns the session identity.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	user, exists := middleware.GetUserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.TokenValidationResponse{
			Valid:     false,
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenValidationResponse{
		Valid:     true,
		Usuario:   user.Usuario,
		Rol:       user.Rol,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *AuthHandler) generateToken(usuario string) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		Usuario: usuario,
		Rol:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(h.Config.JWT.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.JWT.Secret))
}
