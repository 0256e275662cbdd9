package reports

import (
	"sort"
	"time"

	"bauhaus-reports-api/internal/models"
)

// Unificado is the merged subdiario table for one month plus its derived
// aggregates.
type Unificado struct {
	Filas map[string]models.UnifiedDailyRow `json:"-"`

	// Orden holds the row keys in presentation order.
	Orden []string `json:"orden"`

	Totales    map[string]float64 `json:"totales"`
	Proyeccion map[string]float64 `json:"proyeccion"`
	Diferencia map[string]float64 `json:"diferencia"`

	DiasTranscurridos int `json:"dias_transcurridos"`
	DiasDelMes        int `json:"dias_del_mes"`
}

// FilasOrdenadas returns the merged rows in presentation order.
func (u Unificado) FilasOrdenadas() []models.UnifiedDailyRow {
	filas := make([]models.UnifiedDailyRow, 0, len(u.Orden))
	for _, clave := range u.Orden {
		filas = append(filas, u.Filas[clave])
	}
	return filas
}

// UnificarSubdiario merges the four independently fetched daily report
// streams into one row per DD-MM key, restricted to the month of ref.
// Within a key, later sources overwrite on field-name collision; in
// practice the field sets are disjoint. Ordering is descending (most
// recent day first) unless ascendente is set, which the raw detail tables
// use.
func UnificarSubdiario(fuentes [][]models.DailyRecord, ref time.Time, ascendente bool) Unificado {
	anioRef, mesRef := ref.Year(), int(ref.Month())

	filas := make(map[string]models.UnifiedDailyRow)
	for _, fuente := range fuentes {
		for _, registro := range fuente {
			anio, mes, ok := AnioMes(registro.Fecha)
			if !ok || anio != anioRef || mes != mesRef {
				continue
			}
			clave, ok := ClaveDia(registro.Fecha)
			if !ok {
				continue
			}

			fila, existe := filas[clave]
			if !existe {
				fila = models.UnifiedDailyRow{Clave: clave, Campos: make(map[string]float64)}
			}
			for campo, valor := range registro.Campos {
				fila.Campos[campo] = valor
			}
			filas[clave] = fila
		}
	}

	orden := make([]string, 0, len(filas))
	for clave := range filas {
		orden = append(orden, clave)
	}
	sort.Slice(orden, func(i, j int) bool {
		if ascendente {
			return menorClaveDia(orden[i], orden[j])
		}
		return menorClaveDia(orden[j], orden[i])
	})

	diasTranscurridos := ref.Day()
	diasDelMes := DiasEnMes(anioRef, mesRef)

	totales := make(map[string]float64)
	for _, fila := range filas {
		for campo, valor := range fila.Campos {
			totales[campo] += valor
		}
	}

	proyeccion := make(map[string]float64, len(totales))
	diferencia := make(map[string]float64, len(totales))
	for campo, total := range totales {
		p := Proyectar(total, diasTranscurridos, diasDelMes)
		proyeccion[campo] = p
		diferencia[campo] = p - total
	}

	return Unificado{
		Filas:             filas,
		Orden:             orden,
		Totales:           totales,
		Proyeccion:        proyeccion,
		Diferencia:        diferencia,
		DiasTranscurridos: diasTranscurridos,
		DiasDelMes:        diasDelMes,
	}
}

// Proyectar linearly extrapolates a month-to-date total to a full-month
// estimate.
func Proyectar(total float64, diasTranscurridos, diasDelMes int) float64 {
	if diasTranscurridos <= 0 {
		return 0
	}
	return total / float64(diasTranscurridos) * float64(diasDelMes)
}

// menorClaveDia orders DD-MM keys chronologically.
func menorClaveDia(a, b string) bool {
	if len(a) != 5 || len(b) != 5 {
		return a < b
	}
	if a[3:] != b[3:] {
		return a[3:] < b[3:]
	}
	return a[:2] < b[:2]
}
