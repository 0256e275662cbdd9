package handlers

import (
	"net/http"
	"time"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/models"
	"bauhaus-reports-api/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type FleetHandler struct {
	Backend *backend.Client
	log     zerolog.Logger
	now     func() time.Time
}

func NewFleetHandler(client *backend.Client, log zerolog.Logger) *FleetHandler {
	return &FleetHandler{
		Backend: client,
		log:     log,
		now:     time.Now,
	}
}

// GetPosiciones serves the current position per plate plus the per-company
// activity rollup.
func (h *FleetHandler) GetPosiciones(c *gin.Context) {
	pings, err := h.Backend.PosicionesFlota(c)
	if err != nil {
		h.log.Error().Err(err).Msg("fallo el reporte de flota")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	posiciones := reports.PosicionesActuales(pings, h.now())

	c.JSON(http.StatusOK, gin.H{
		"posiciones": posiciones,
		"unidades":   reports.ResumenFlota(posiciones),
	})
}
