package reports

import (
	"sort"
	"strings"
	"time"

	"bauhaus-reports-api/internal/models"
)

// GrupoTanque aggregates every tank that stores the same product.
type GrupoTanque struct {
	Producto     string  `json:"producto"`
	Tanques      []int   `json:"tanques"`
	Capacidad    float64 `json:"capacidad"`
	Nivel        float64 `json:"nivel"`
	Porcentaje   float64 `json:"porcentaje"`
	Temperatura  float64 `json:"temperatura"`
	Actualizado  string  `json:"actualizado"`
	Estado       string  `json:"estado"`
	SinHistorial bool    `json:"sin_historial"`
}

// AgruparTanques groups raw tank telemetry by normalized product name.
// Capacity and level are summed; temperature and timestamp come from the
// most recently updated member; a group is flagged SinHistorial when every
// member has an empty historical-month series.
func AgruparTanques(tanques []models.TankLevel) []GrupoTanque {
	grupos := make(map[string]*GrupoTanque)
	ultimos := make(map[string]time.Time)

	for _, t := range tanques {
		producto := strings.ToUpper(strings.TrimSpace(t.Producto))
		if producto == "" {
			continue
		}

		g, existe := grupos[producto]
		if !existe {
			g = &GrupoTanque{Producto: producto, SinHistorial: true}
			grupos[producto] = g
		}

		g.Tanques = append(g.Tanques, t.ID)
		g.Capacidad += t.Capacidad.Float()
		g.Nivel += t.Nivel.Float()
		if len(t.HistorialMes) > 0 {
			g.SinHistorial = false
		}

		ts, ok := ParseTimestamp(t.Actualizado)
		if g.Actualizado == "" || (ok && ts.After(ultimos[producto])) {
			g.Temperatura = t.Temperatura.Float()
			g.Actualizado = t.Actualizado
			if ok {
				ultimos[producto] = ts
			}
		}
	}

	resultado := make([]GrupoTanque, 0, len(grupos))
	for _, g := range grupos {
		if g.Capacidad > 0 {
			g.Porcentaje = g.Nivel / g.Capacidad * 100
		}
		g.Estado = estadoNivel(g.Porcentaje)
		resultado = append(resultado, *g)
	}

	sort.Slice(resultado, func(i, j int) bool {
		return resultado[i].Producto < resultado[j].Producto
	})
	return resultado
}

// estadoNivel buckets a fill percentage for the dashboard color coding.
func estadoNivel(porcentaje float64) string {
	switch {
	case porcentaje < 20:
		return "rojo"
	case porcentaje < 50:
		return "ambar"
	default:
		return "verde"
	}
}
