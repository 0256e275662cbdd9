package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler proxies user management to the upstream backend and resolves
// the numeric empresa/rol foreign keys against the small reference lists.
type UserHandler struct {
	Backend *backend.Client
	log     zerolog.Logger
}

func NewUserHandler(client *backend.Client, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		Backend: client,
		log:     log,
	}
}

// GetUsuarios retrieves all users with their company and role names
// resolved (admin only).
func (h *UserHandler) GetUsuarios(c *gin.Context) {
	var usuarios []models.Usuario
	var empresas []models.Empresa
	var roles []models.Rol
	errores := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); usuarios, errores[0] = h.Backend.Usuarios(c) }()
	go func() { defer wg.Done(); empresas, errores[1] = h.Backend.Empresas(c) }()
	go func() { defer wg.Done(); roles, errores[2] = h.Backend.Roles(c) }()
	wg.Wait()

	for _, err := range errores {
		if err != nil {
			h.log.Error().Err(err).Msg("fallo la consulta de usuarios")
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
			return
		}
	}

	detalles := make([]models.UsuarioDetalle, len(usuarios))
	for i, usuario := range usuarios {
		detalles[i] = models.UsuarioDetalle{
			Usuario:       usuario,
			EmpresaNombre: nombreEmpresa(empresas, usuario.EmpresaID),
			RolNombre:     nombreRol(roles, usuario.RolID),
		}
	}

	c.JSON(http.StatusOK, detalles)
}

// GetUsuarioByID retrieves one user with resolved names and permissions
// (admin only).
func (h *UserHandler) GetUsuarioByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "ID de usuario inválido",
		})
		return
	}

	usuarios, err := h.Backend.Usuarios(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	var encontrado *models.Usuario
	for i := range usuarios {
		if usuarios[i].ID == id {
			encontrado = &usuarios[i]
			break
		}
	}
	if encontrado == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Usuario no encontrado",
		})
		return
	}

	empresas, err := h.Backend.Empresas(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}
	roles, err := h.Backend.Roles(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}
	permisos, err := h.Backend.PermisosDeUsuario(c, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.UsuarioDetalle{
		Usuario:       *encontrado,
		EmpresaNombre: nombreEmpresa(empresas, encontrado.EmpresaID),
		RolNombre:     nombreRol(roles, encontrado.RolID),
		Permisos:      permisos,
	})
}

// CreateUsuario creates a user on the backend (admin only).
func (h *UserHandler) CreateUsuario(c *gin.Context) {
	var req models.CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Datos inválidos",
		})
		return
	}

	if strings.TrimSpace(req.Usuario) == "" || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Usuario y email son obligatorios",
		})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "La contraseña debe tener al menos 6 caracteres",
		})
		return
	}

	usuario, err := h.Backend.CrearUsuario(c, req)
	if err != nil {
		h.log.Error().Err(err).Msg("fallo el alta de usuario")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, usuario)
}

// UpdateUsuario updates a user on the backend (admin only).
func (h *UserHandler) UpdateUsuario(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "ID de usuario inválido",
		})
		return
	}

	var req models.UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Datos inválidos",
		})
		return
	}

	if req.Password != "" && len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "La contraseña debe tener al menos 6 caracteres",
		})
		return
	}

	usuario, err := h.Backend.ActualizarUsuario(c, id, req)
	if err != nil {
		h.log.Error().Err(err).Int("usuario", id).Msg("fallo la actualización de usuario")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, usuario)
}

// AddPermiso grants a permission to a user (admin only).
func (h *UserHandler) AddPermiso(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "ID de usuario inválido",
		})
		return
	}

	var req models.PermisoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Datos inválidos",
		})
		return
	}

	if err := h.Backend.AgregarPermiso(c, id, req.PermisoID); err != nil {
		h.log.Error().Err(err).Int("usuario", id).Msg("fallo el alta de permiso")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permiso agregado"})
}

// RemovePermiso revokes a permission from a user (admin only).
func (h *UserHandler) RemovePermiso(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "ID de usuario inválido",
		})
		return
	}

	permisoID, err := strconv.Atoi(c.Param("permisoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "ID de permiso inválido",
		})
		return
	}

	if err := h.Backend.QuitarPermiso(c, id, permisoID); err != nil {
		h.log.Error().Err(err).Int("usuario", id).Msg("fallo la baja de permiso")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permiso quitado"})
}

// nombreEmpresa resolves a company id by linear lookup; the reference list
// has a handful of entries.
func nombreEmpresa(empresas []models.Empresa, id int) string {
	for _, empresa := range empresas {
		if empresa.ID == id {
			return empresa.Nombre
		}
	}
	return ""
}

func nombreRol(roles []models.Rol, id int) string {
	for _, rol := range roles {
		if rol.ID == id {
			return rol.Nombre
		}
	}
	return ""
}
