package reports

import (
	"strings"

	"bauhaus-reports-api/internal/models"
)

// Channel attribution for subdiario POS lines: Axion Card (AC) versus
// direct sale. The rules here are the business heuristic as operated
// today; they are deliberately centralized so they can be revalidated
// against real invoice semantics in one place.

const ivaInterno = 1.21

// productosGasoil is the fixed set of diesel grades sold over the AC
// corporate card channel.
var productosGasoil = map[string]bool{
	"QUANTIUM DIESEL": true,
	"DIESEL 500":      true,
	"INFINIA DIESEL":  true,
	"ULTRA DIESEL":    true,
}

// cajasTarjeta are the register-name fragments that mark card lanes.
var cajasTarjeta = []string{"AC", "AXION CARD", "TARJETA"}

// cuentaTarjeta is the designated corporate card account on invoices.
const cuentaTarjeta = "AXION CARD"

// VentaClasificada is a POS line with its attributed channel and the
// invoiced total column.
type VentaClasificada struct {
	models.PosLineItem
	Canal          string  `json:"canal"` // "ac" or "directo"
	TotalFacturado float64 `json:"total_facturado"`
}

// ResultadoVentas is the classified range plus channel totals.
type ResultadoVentas struct {
	Ventas       []VentaClasificada `json:"ventas"`
	TotalAC      float64            `json:"total_ac"`
	TotalDirecto float64            `json:"total_directo"`
	Advertencia  string             `json:"advertencia,omitempty"`
}

// ClasificarVentas attributes each POS line to the AC card channel or the
// direct channel. A line is card-channel when its product is a diesel
// grade and an AC invoice exists on the same calendar date, when its
// register name contains a card fragment, or when it carries an invoice
// number on a date known to have AC invoices. Liquid-fuel lines get the
// internal tax multiplier applied to the invoiced-total column.
//
// When the range has no movements at all, the report substitutes
// placeholder rows and surfaces a warning instead of an empty table.
func ClasificarVentas(lineas []models.PosLineItem, facturas []models.InvoiceRecord) ResultadoVentas {
	if len(lineas) == 0 {
		return resultadoDeEjemplo()
	}

	fechasAC := fechasConFacturaAC(facturas)

	resultado := ResultadoVentas{Ventas: make([]VentaClasificada, 0, len(lineas))}
	for _, linea := range lineas {
		dia, _ := ClaveDia(linea.Fecha)
		esAC := esCanalTarjeta(linea, fechasAC[dia])

		total := linea.Importe.Float()
		if esCombustibleLiquido(linea) {
			total *= ivaInterno
		}

		venta := VentaClasificada{PosLineItem: linea, TotalFacturado: Truncar2(total)}
		if esAC {
			venta.Canal = "ac"
			resultado.TotalAC += venta.TotalFacturado
		} else {
			venta.Canal = "directo"
			resultado.TotalDirecto += venta.TotalFacturado
		}
		resultado.Ventas = append(resultado.Ventas, venta)
	}

	resultado.TotalAC = Truncar2(resultado.TotalAC)
	resultado.TotalDirecto = Truncar2(resultado.TotalDirecto)
	return resultado
}

func esCanalTarjeta(linea models.PosLineItem, diaConFacturaAC bool) bool {
	if productosGasoil[strings.ToUpper(strings.TrimSpace(linea.Producto))] && diaConFacturaAC {
		return true
	}
	caja := strings.ToUpper(linea.Caja)
	for _, fragmento := range cajasTarjeta {
		if strings.Contains(caja, fragmento) {
			return true
		}
	}
	return linea.NroFactura != "" && diaConFacturaAC
}

// esCombustibleLiquido marks the lines subject to the internal tax
// multiplier: fuel-category lines with dispensed litres (GNC is metered in
// m3 and excluded).
func esCombustibleLiquido(linea models.PosLineItem) bool {
	return CategoriaNegocio(linea.Categoria) == "COMBUSTIBLES" && linea.Litros.Float() > 0
}

func fechasConFacturaAC(facturas []models.InvoiceRecord) map[string]bool {
	fechas := make(map[string]bool)
	for _, f := range facturas {
		if !strings.EqualFold(strings.TrimSpace(f.Cuenta), cuentaTarjeta) {
			continue
		}
		if dia, ok := ClaveDia(f.Fecha); ok {
			fechas[dia] = true
		}
	}
	return fechas
}

// resultadoDeEjemplo fabricates placeholder rows so the view never shows
// an empty state, with an explicit warning so nobody mistakes them for
// real movements.
func resultadoDeEjemplo() ResultadoVentas {
	ejemplos := []models.PosLineItem{
		{Producto: "QUANTIUM DIESEL", Categoria: "diesel", Caja: "CAJA 1", Litros: 0, Importe: 0},
		{Producto: "INFINIA", Categoria: "nafta premium", Caja: "CAJA 2", Litros: 0, Importe: 0},
	}

	resultado := ResultadoVentas{
		Advertencia: "Sin movimientos para el rango seleccionado; se muestran filas de ejemplo",
	}
	for _, linea := range ejemplos {
		resultado.Ventas = append(resultado.Ventas, VentaClasificada{
			PosLineItem: linea,
			Canal:       "directo",
		})
	}
	return resultado
}
