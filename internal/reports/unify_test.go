package reports

import (
	"testing"
	"time"

	"bauhaus-reports-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registro(fecha string, campos map[string]float64) models.DailyRecord {
	return models.DailyRecord{Fecha: fecha, Campos: campos}
}

func TestUnificarSubdiario_UnaFilaPorFecha(t *testing.T) {
	ref := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	combustibles := []models.DailyRecord{
		registro("2025-03-01T00:00:00", map[string]float64{"super_litros": 100, "total_dinero_dia": 500}),
		registro("2025-03-02T00:00:00", map[string]float64{"super_litros": 200, "total_dinero_dia": 900}),
	}
	gnc := []models.DailyRecord{
		registro("2025-03-01T00:00:00", map[string]float64{"gnc_m3": 50, "total_gnc_pesos": 120}),
		registro("2025-03-03T00:00:00", map[string]float64{"gnc_m3": 70, "total_gnc_pesos": 200}),
	}
	otras := []models.DailyRecord{
		registro("2025-03-02T00:00:00", map[string]float64{"lubricantes_pesos": 30}),
	}
	shop := []models.DailyRecord{
		// Fuera del mes de referencia: no debe aparecer.
		registro("2025-02-28T00:00:00", map[string]float64{"total_shop_pesos": 999}),
	}

	u := UnificarSubdiario([][]models.DailyRecord{combustibles, gnc, otras, shop}, ref, false)

	// Claves distintas dentro del mes: 01-03, 02-03, 03-03.
	require.Len(t, u.Filas, 3)

	fila1 := u.Filas["01-03"]
	assert.Equal(t, 100.0, fila1.Campos["super_litros"])
	assert.Equal(t, 50.0, fila1.Campos["gnc_m3"])
	assert.Equal(t, 120.0, fila1.Campos["total_gnc_pesos"])

	fila2 := u.Filas["02-03"]
	assert.Equal(t, 200.0, fila2.Campos["super_litros"])
	assert.Equal(t, 30.0, fila2.Campos["lubricantes_pesos"])

	_, existeFebrero := u.Filas["28-02"]
	assert.False(t, existeFebrero)
}

func TestUnificarSubdiario_ColisionGanaLaUltimaFuente(t *testing.T) {
	ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	primera := []models.DailyRecord{
		registro("2025-03-05", map[string]float64{"total": 1}),
	}
	segunda := []models.DailyRecord{
		registro("2025-03-05", map[string]float64{"total": 2}),
	}

	u := UnificarSubdiario([][]models.DailyRecord{primera, segunda}, ref, false)
	assert.Equal(t, 2.0, u.Filas["05-03"].Campos["total"])
}

func TestUnificarSubdiario_Orden(t *testing.T) {
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	fuente := []models.DailyRecord{
		registro("2025-03-03", map[string]float64{"v": 1}),
		registro("2025-03-11", map[string]float64{"v": 1}),
		registro("2025-03-07", map[string]float64{"v": 1}),
	}

	desc := UnificarSubdiario([][]models.DailyRecord{fuente}, ref, false)
	assert.Equal(t, []string{"11-03", "07-03", "03-03"}, desc.Orden)

	asc := UnificarSubdiario([][]models.DailyRecord{fuente}, ref, true)
	assert.Equal(t, []string{"03-03", "07-03", "11-03"}, asc.Orden)
}

func TestUnificarSubdiario_Proyeccion(t *testing.T) {
	// Día 10 de un mes de 30 días con 1000 acumulado: proyección 3000,
	// diferencia 2000.
	ref := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	fuente := []models.DailyRecord{
		registro("2025-04-05", map[string]float64{"total_dinero_dia": 400}),
		registro("2025-04-09", map[string]float64{"total_dinero_dia": 600}),
	}

	u := UnificarSubdiario([][]models.DailyRecord{fuente}, ref, false)

	assert.Equal(t, 10, u.DiasTranscurridos)
	assert.Equal(t, 30, u.DiasDelMes)
	assert.InDelta(t, 1000.0, u.Totales["total_dinero_dia"], 1e-9)
	assert.InDelta(t, 3000.0, u.Proyeccion["total_dinero_dia"], 1e-9)
	assert.InDelta(t, 2000.0, u.Diferencia["total_dinero_dia"], 1e-9)
}

func TestProyectar(t *testing.T) {
	assert.InDelta(t, 3000.0, Proyectar(1000, 10, 30), 1e-9)
	assert.Equal(t, 0.0, Proyectar(1000, 0, 30))
}

func TestFilasOrdenadas(t *testing.T) {
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	fuente := []models.DailyRecord{
		registro("2025-03-03", map[string]float64{"v": 1}),
		registro("2025-03-11", map[string]float64{"v": 2}),
	}

	u := UnificarSubdiario([][]models.DailyRecord{fuente}, ref, false)
	filas := u.FilasOrdenadas()
	require.Len(t, filas, 2)
	assert.Equal(t, "11-03", filas[0].Clave)
	assert.Equal(t, "03-03", filas[1].Clave)
}
