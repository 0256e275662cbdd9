package reports

import (
	"testing"
	"time"

	"bauhaus-reports-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosicionesActuales_UltimoPingPorPatente(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	pings := []models.FleetPosition{
		{Patente: "AB123CD", Empresa: "Bauhaus", Fecha: "2025-03-10T08:00:00Z", Velocidad: 60},
		{Patente: "AB123CD", Empresa: "Bauhaus", Fecha: "2025-03-10T11:00:00Z", Velocidad: 0},
		{Patente: "AB123CD", Empresa: "Bauhaus", Fecha: "2025-03-09T23:00:00Z", Velocidad: 80},
		{Patente: "XY999ZZ", Empresa: "Bauhaus", Fecha: "2025-03-08T10:00:00Z", Velocidad: 40},
	}

	posiciones := PosicionesActuales(pings, ahora)
	require.Len(t, posiciones, 2)

	assert.Equal(t, "AB123CD", posiciones[0].Patente)
	assert.Equal(t, "2025-03-10T11:00:00Z", posiciones[0].Fecha)
	assert.True(t, posiciones[0].Activa)

	// Último ping hace más de 24 horas: inactiva.
	assert.Equal(t, "XY999ZZ", posiciones[1].Patente)
	assert.False(t, posiciones[1].Activa)
}

func TestPosicionesActuales_DescartaPingsInvalidos(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	posiciones := PosicionesActuales([]models.FleetPosition{
		{Patente: "", Fecha: "2025-03-10T08:00:00Z"},
		{Patente: "AB123CD", Fecha: "fecha rota"},
	}, ahora)
	assert.Empty(t, posiciones)
}

func TestResumenFlota(t *testing.T) {
	posiciones := []PosicionActual{
		{FleetPosition: models.FleetPosition{Patente: "A", Empresa: "Bauhaus"}, Activa: true},
		{FleetPosition: models.FleetPosition{Patente: "B", Empresa: "Bauhaus"}, Activa: false},
		{FleetPosition: models.FleetPosition{Patente: "C", Empresa: "Transporte Sur"}, Activa: true},
	}

	resumen := ResumenFlota(posiciones)
	require.Len(t, resumen, 2)

	assert.Equal(t, "Bauhaus", resumen[0].Empresa)
	assert.Equal(t, 1, resumen[0].UnidadesActivas)
	assert.Equal(t, 2, resumen[0].UnidadesTotales)

	assert.Equal(t, "Transporte Sur", resumen[1].Empresa)
	assert.Equal(t, 1, resumen[1].UnidadesActivas)
	assert.Equal(t, 1, resumen[1].UnidadesTotales)
}
