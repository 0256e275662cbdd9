package handlers

import (
	"net/http"
	"sync"
	"time"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/models"
	"bauhaus-reports-api/internal/remote"
	"bauhaus-reports-api/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type DashboardHandler struct {
	Backend *backend.Client
	Niveles *remote.Collection[[]reports.GrupoTanque]
	log     zerolog.Logger
	now     func() time.Time
}

func NewDashboardHandler(client *backend.Client, niveles *remote.Collection[[]reports.GrupoTanque], log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		Backend: client,
		Niveles: niveles,
		log:     log,
		now:     time.Now,
	}
}

// DashboardData is the KPI composition the landing screen renders.
type DashboardData struct {
	TotalMes           float64               `json:"total_mes"`
	TotalMesFormateado string                `json:"total_mes_formateado"`
	Proyeccion         float64               `json:"proyeccion"`
	Diferencia         float64               `json:"diferencia"`
	DiasTranscurridos  int                   `json:"dias_transcurridos"`
	DiasDelMes         int                   `json:"dias_del_mes"`
	Tanques            []reports.GrupoTanque `json:"tanques"`
	Flota              []models.FleetUnit    `json:"flota"`
}

// GetDashboard composes the month-to-date unified totals, the tank
// snapshot and the fleet rollup. The underlying report fetches run
// concurrently and one failure fails the whole response; there is no
// partial dashboard.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	start := h.now()

	fuentes := make([][]models.DailyRecord, 4)
	var pings []models.FleetPosition
	errores := make([]error, 5)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() { defer wg.Done(); fuentes[0], errores[0] = h.Backend.SubdiarioCombustibles(c, "", "") }()
	go func() { defer wg.Done(); fuentes[1], errores[1] = h.Backend.SubdiarioGNC(c, "", "") }()
	go func() { defer wg.Done(); fuentes[2], errores[2] = h.Backend.SubdiarioOtrasVentas(c, "", "") }()
	go func() { defer wg.Done(); fuentes[3], errores[3] = h.Backend.SubdiarioShop(c, "", "") }()
	go func() { defer wg.Done(); pings, errores[4] = h.Backend.PosicionesFlota(c) }()
	wg.Wait()

	for _, err := range errores {
		if err != nil {
			h.log.Error().Err(err).Msg("fallo el armado del dashboard")
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
			return
		}
	}

	unificado := reports.UnificarSubdiario(fuentes, h.now(), false)

	var totalMes float64
	for _, fila := range unificado.Filas {
		totalMes += totalDelDia(fila)
	}
	proyeccion := reports.Proyectar(totalMes, unificado.DiasTranscurridos, unificado.DiasDelMes)

	tanques, _, _ := h.Niveles.Snapshot()
	if tanques == nil {
		tanques = []reports.GrupoTanque{}
	}

	posiciones := reports.PosicionesActuales(pings, h.now())

	h.log.Debug().Dur("duracion", time.Since(start)).Msg("dashboard armado")

	c.JSON(http.StatusOK, DashboardData{
		TotalMes:           reports.Truncar2(totalMes),
		TotalMesFormateado: reports.FormatearImporte(totalMes),
		Proyeccion:         reports.Truncar2(proyeccion),
		Diferencia:         reports.Truncar2(proyeccion - totalMes),
		DiasTranscurridos:  unificado.DiasTranscurridos,
		DiasDelMes:         unificado.DiasDelMes,
		Tanques:            tanques,
		Flota:              reports.ResumenFlota(posiciones),
	})
}

// totalDelDia picks the day's money total: the liquid-fuel source already
// carries a per-day grand total, the other sources contribute their own
// totals.
func totalDelDia(fila models.UnifiedDailyRow) float64 {
	campos := []string{"total_dinero_dia", "total_gnc_pesos", "total_otras_pesos", "total_shop_pesos"}
	var total float64
	for _, campo := range campos {
		total += fila.Campos[campo]
	}
	return total
}
