package reports

import (
	"sort"
	"time"

	"bauhaus-reports-api/internal/models"
)

// umbralActividad is how recent the last ping must be for a unit to count
// as active.
const umbralActividad = 24 * time.Hour

// PosicionActual is the newest ping per plate plus its activity state.
type PosicionActual struct {
	models.FleetPosition
	Activa bool `json:"activa"`
}

// PosicionesActuales reduces the raw ping list to the position with the
// maximum timestamp per plate. A unit is active when its newest ping is
// less than 24 hours old.
func PosicionesActuales(pings []models.FleetPosition, ahora time.Time) []PosicionActual {
	ultimas := make(map[string]models.FleetPosition)
	marcas := make(map[string]time.Time)

	for _, ping := range pings {
		if ping.Patente == "" {
			continue
		}
		ts, ok := ParseTimestamp(ping.Fecha)
		if !ok {
			continue
		}
		if previa, existe := marcas[ping.Patente]; !existe || ts.After(previa) {
			ultimas[ping.Patente] = ping
			marcas[ping.Patente] = ts
		}
	}

	posiciones := make([]PosicionActual, 0, len(ultimas))
	for patente, ping := range ultimas {
		posiciones = append(posiciones, PosicionActual{
			FleetPosition: ping,
			Activa:        ahora.Sub(marcas[patente]) < umbralActividad,
		})
	}

	sort.Slice(posiciones, func(i, j int) bool {
		return posiciones[i].Patente < posiciones[j].Patente
	})
	return posiciones
}

// ResumenFlota rolls current positions up to per-company unit counts.
func ResumenFlota(posiciones []PosicionActual) []models.FleetUnit {
	unidades := make(map[string]*models.FleetUnit)
	for _, p := range posiciones {
		empresa := p.Empresa
		u, existe := unidades[empresa]
		if !existe {
			u = &models.FleetUnit{Empresa: empresa}
			unidades[empresa] = u
		}
		u.UnidadesTotales++
		if p.Activa {
			u.UnidadesActivas++
		}
	}

	resumen := make([]models.FleetUnit, 0, len(unidades))
	for _, u := range unidades {
		resumen = append(resumen, *u)
	}
	sort.Slice(resumen, func(i, j int) bool {
		return resumen[i].Empresa < resumen[j].Empresa
	})
	return resumen
}
