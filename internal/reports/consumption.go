package reports

import (
	"sort"
	"strings"

	"bauhaus-reports-api/internal/models"
)

// taxonomia maps the raw POS category strings to the fixed business
// taxonomy used across the monthly dashboard. Lookup is case-insensitive;
// anything unmapped passes through unchanged as its own category.
var taxonomia = map[string]string{
	"nafta super":    "COMBUSTIBLES",
	"nafta premium":  "COMBUSTIBLES",
	"infinia":        "COMBUSTIBLES",
	"diesel":         "COMBUSTIBLES",
	"diesel premium": "COMBUSTIBLES",
	"quantium":       "COMBUSTIBLES",
	"gnc":            "GNC",
	"lubricantes":    "LUBRICANTES",
	"aceites":        "LUBRICANTES",
	"adblue":         "ADBLUE",
	"urea":           "ADBLUE",
	"spot":           "SPOT",
	"shop":           "SHOP",
	"tienda":         "SHOP",
}

// CategoriaNegocio resolves a raw POS category to its business taxonomy
// category.
func CategoriaNegocio(categoria string) string {
	clave := strings.ToLower(strings.TrimSpace(categoria))
	if mapeada, ok := taxonomia[clave]; ok {
		return mapeada
	}
	return categoria
}

// ResumenConsumo is one (category, month) bucket of the monthly
// consumption report.
type ResumenConsumo struct {
	Categoria      string  `json:"categoria"`
	Mes            string  `json:"mes"`
	Volumen        float64 `json:"volumen"`
	Importe        float64 `json:"importe"`
	PrecioPromedio float64 `json:"precio_promedio"`
}

// AgruparConsumos maps raw POS rows into the business taxonomy and groups
// them by category and calendar month. The weighted average price guards
// the zero-volume case.
func AgruparConsumos(rows []models.ConsumoRow) []ResumenConsumo {
	type clave struct{ categoria, mes string }
	buckets := make(map[clave]*ResumenConsumo)

	for _, fila := range rows {
		mes, ok := MesClave(fila.Fecha)
		if !ok {
			continue
		}
		k := clave{categoria: CategoriaNegocio(fila.Categoria), mes: mes}

		b, existe := buckets[k]
		if !existe {
			b = &ResumenConsumo{Categoria: k.categoria, Mes: k.mes}
			buckets[k] = b
		}
		b.Volumen += fila.Volumen.Float()
		b.Importe += fila.Importe.Float()
	}

	resumen := make([]ResumenConsumo, 0, len(buckets))
	for _, b := range buckets {
		if b.Volumen != 0 {
			b.PrecioPromedio = b.Importe / b.Volumen
		}
		resumen = append(resumen, *b)
	}

	sort.Slice(resumen, func(i, j int) bool {
		if resumen[i].Mes != resumen[j].Mes {
			return resumen[i].Mes < resumen[j].Mes
		}
		return resumen[i].Categoria < resumen[j].Categoria
	})
	return resumen
}
