package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/models"
	"bauhaus-reports-api/internal/remote"
	"bauhaus-reports-api/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TanksHandler struct {
	Backend *backend.Client
	Niveles *remote.Collection[[]reports.GrupoTanque]
	log     zerolog.Logger
}

// NewTanksHandler builds the handler and the polled tank-level collection
// behind it. The caller owns starting and stopping the poll loop.
func NewTanksHandler(client *backend.Client, log zerolog.Logger) *TanksHandler {
	niveles := remote.NewCollection(func(ctx context.Context) ([]reports.GrupoTanque, error) {
		tanques, err := client.Tanques(ctx)
		if err != nil {
			return nil, err
		}
		return reports.AgruparTanques(tanques), nil
	})

	return &TanksHandler{
		Backend: client,
		Niveles: niveles,
		log:     log,
	}
}

// GetTanques serves the latest polled tank snapshot grouped by product.
func (h *TanksHandler) GetTanques(c *gin.Context) {
	grupos, estado, err := h.Niveles.Snapshot()

	if grupos == nil {
		if estado == remote.Failed {
			h.log.Error().Err(err).Msg("sin datos de tanques")
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"estado": estado.String(),
			"grupos": []reports.GrupoTanque{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estado":      estado.String(),
		"grupos":      grupos,
		"actualizado": h.Niveles.UpdatedAt().Format(time.RFC3339),
	})
}

// CambiarEstado proxies a tank active-flag toggle to the backend and
// refreshes the snapshot so the change shows up immediately.
func (h *TanksHandler) CambiarEstado(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "ID de tanque inválido",
		})
		return
	}

	var req struct {
		Activo bool `json:"activo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Formato de solicitud inválido",
		})
		return
	}

	if err := h.Backend.CambiarEstadoTanque(c, id, req.Activo); err != nil {
		h.log.Error().Err(err).Int("tanque", id).Msg("fallo el cambio de estado")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	if err := h.Niveles.Load(c); err != nil {
		h.log.Warn().Err(err).Msg("no se pudo refrescar el snapshot de tanques")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Estado de tanque actualizado",
	})
}
