package handlers

import (
	"net/http"
	"sync"
	"time"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/models"
	"bauhaus-reports-api/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ReportsHandler struct {
	Backend *backend.Client
	log     zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewReportsHandler(client *backend.Client, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{
		Backend: client,
		log:     log,
		now:     time.Now,
	}
}

// SubdiarioResponse is the unified monthly table plus display aggregates.
type SubdiarioResponse struct {
	Filas              []models.UnifiedDailyRow `json:"filas"`
	Totales            map[string]float64       `json:"totales"`
	TotalesFormateados map[string]string        `json:"totales_formateados"`
	Proyeccion         map[string]float64       `json:"proyeccion"`
	Diferencia         map[string]float64       `json:"diferencia"`
	DiasTranscurridos  int                      `json:"dias_transcurridos"`
	DiasDelMes         int                      `json:"dias_del_mes"`
}

// GetSubdiario merges the four daily report sources into the unified
// monthly table. The four fetches run concurrently and the merge is
// all-or-nothing: one failed source fails the whole report.
func (h *ReportsHandler) GetSubdiario(c *gin.Context) {
	unificado, err := h.unificar(c)
	if err != nil {
		h.log.Error().Err(err).Msg("fallo la unificación del subdiario")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	formateados := make(map[string]string, len(unificado.Totales))
	for campo, total := range unificado.Totales {
		formateados[campo] = reports.FormatearImporte(total)
	}

	c.JSON(http.StatusOK, SubdiarioResponse{
		Filas:              unificado.FilasOrdenadas(),
		Totales:            unificado.Totales,
		TotalesFormateados: formateados,
		Proyeccion:         unificado.Proyeccion,
		Diferencia:         unificado.Diferencia,
		DiasTranscurridos:  unificado.DiasTranscurridos,
		DiasDelMes:         unificado.DiasDelMes,
	})
}

// ExportSubdiario streams the unified monthly table as an .xlsx download.
func (h *ReportsHandler) ExportSubdiario(c *gin.Context) {
	unificado, err := h.unificar(c)
	if err != nil {
		h.log.Error().Err(err).Msg("fallo la exportación del subdiario")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	archivo, err := reports.ExportarSubdiario(unificado)
	if err != nil {
		h.log.Error().Err(err).Msg("no se pudo generar el archivo")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "No se pudo generar el archivo",
		})
		return
	}

	nombre := "subdiario-" + h.now().Format("2006-01") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	if err := archivo.Write(c.Writer); err != nil {
		h.log.Error().Err(err).Msg("no se pudo escribir el archivo")
	}
}

func (h *ReportsHandler) unificar(c *gin.Context) (reports.Unificado, error) {
	inicio := c.Query("fechaInicio")
	fin := c.Query("fechaFin")
	ascendente := c.Query("orden") == "asc"

	fuentes := make([][]models.DailyRecord, 4)
	errores := make([]error, 4)

	fetches := []func() ([]models.DailyRecord, error){
		func() ([]models.DailyRecord, error) { return h.Backend.SubdiarioCombustibles(c, inicio, fin) },
		func() ([]models.DailyRecord, error) { return h.Backend.SubdiarioGNC(c, inicio, fin) },
		func() ([]models.DailyRecord, error) { return h.Backend.SubdiarioOtrasVentas(c, inicio, fin) },
		func() ([]models.DailyRecord, error) { return h.Backend.SubdiarioShop(c, inicio, fin) },
	}

	var wg sync.WaitGroup
	for i, fetch := range fetches {
		wg.Add(1)
		go func(i int, fetch func() ([]models.DailyRecord, error)) {
			defer wg.Done()
			fuentes[i], errores[i] = fetch()
		}(i, fetch)
	}
	wg.Wait()

	for _, err := range errores {
		if err != nil {
			return reports.Unificado{}, err
		}
	}

	return reports.UnificarSubdiario(fuentes, h.now(), ascendente), nil
}

// GetConsumos serves the monthly consumption report grouped by business
// category and calendar month.
func (h *ReportsHandler) GetConsumos(c *gin.Context) {
	rows, err := h.Backend.Consumos(c, c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		h.log.Error().Err(err).Msg("fallo el reporte de consumos")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"consumos": reports.AgruparConsumos(rows),
	})
}

// GetVentasDiarias serves the channel-attributed daily sales report.
func (h *ReportsHandler) GetVentasDiarias(c *gin.Context) {
	inicio := c.Query("fechaInicio")
	fin := c.Query("fechaFin")

	var lineas []models.PosLineItem
	var facturas []models.InvoiceRecord
	var errLineas, errFacturas error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		lineas, errLineas = h.Backend.VentasPOS(c, inicio, fin)
	}()
	go func() {
		defer wg.Done()
		facturas, errFacturas = h.Backend.Facturas(c, inicio, fin)
	}()
	wg.Wait()

	if errLineas != nil {
		h.log.Error().Err(errLineas).Msg("fallo el reporte de ventas diarias")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: errLineas.Error()})
		return
	}
	if errFacturas != nil {
		h.log.Error().Err(errFacturas).Msg("fallo el reporte de ventas diarias")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: errFacturas.Error()})
		return
	}

	c.JSON(http.StatusOK, reports.ClasificarVentas(lineas, facturas))
}

// GetCuentasCorrientes serves the accounts-receivable balances with their
// total.
func (h *ReportsHandler) GetCuentasCorrientes(c *gin.Context) {
	cuentas, err := h.Backend.CuentasCorrientes(c)
	if err != nil {
		h.log.Error().Err(err).Msg("fallo el reporte de cuentas corrientes")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	var total float64
	for _, cuenta := range cuentas {
		total += cuenta.Saldo.Float()
	}

	c.JSON(http.StatusOK, gin.H{
		"cuentas":          cuentas,
		"saldo_total":      reports.Truncar2(total),
		"saldo_formateado": reports.FormatearImporte(total),
	})
}

// GetFacturasProveedores serves vendor invoices with the outstanding
// total.
func (h *ReportsHandler) GetFacturasProveedores(c *gin.Context) {
	facturas, err := h.Backend.FacturasProveedores(c, c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		h.log.Error().Err(err).Msg("fallo el reporte de facturas de proveedores")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: err.Error()})
		return
	}

	var pendiente float64
	for _, factura := range facturas {
		if factura.Estado != "pagada" {
			pendiente += factura.Importe.Float()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"facturas":             facturas,
		"pendiente_total":      reports.Truncar2(pendiente),
		"pendiente_formateado": reports.FormatearImporte(pendiente),
	})
}
