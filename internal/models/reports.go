package models

// DailyRecord is one per-day row from any of the four subdiario sources
// (liquidos, gnc, otras ventas, shop). The backend field sets are disjoint
// across sources, so the row is kept as its raw field map and merged by
// date key downstream.
type DailyRecord struct {
	Fecha  string             `json:"fecha"`
	Campos map[string]float64 `json:"campos"`
}

// UnifiedDailyRow is the union by date key of the four daily sources. A
// date present in only some sources simply lacks the other sources' fields.
type UnifiedDailyRow struct {
	// Clave is the DD-MM day key.
	Clave  string             `json:"clave"`
	Campos map[string]float64 `json:"campos"`
}

// TankLevel is one tank's telemetry snapshot.
type TankLevel struct {
	ID           int     `json:"id"`
	Producto     string  `json:"producto"`
	Capacidad    Monto   `json:"capacidad"`
	Nivel        Monto   `json:"nivel"`
	Temperatura  Monto   `json:"temperatura"`
	Actualizado  string  `json:"actualizado"`
	Activo       bool    `json:"activo"`
	HistorialMes []Monto `json:"historial_mes"`
}

// ConsumoRow is a raw point-of-sale category/product row for the monthly
// consumption report.
type ConsumoRow struct {
	Fecha     string `json:"fecha"`
	Categoria string `json:"categoria"`
	Producto  string `json:"producto"`
	Volumen   Monto  `json:"volumen"`
	Importe   Monto  `json:"importe"`
}

// PosLineItem is one subdiario point-of-sale line.
type PosLineItem struct {
	Fecha      string `json:"fecha"`
	Producto   string `json:"producto"`
	Categoria  string `json:"categoria"`
	Caja       string `json:"caja"`
	Litros     Monto  `json:"litros"`
	Importe    Monto  `json:"importe"`
	NroFactura string `json:"nro_factura"`
}

// InvoiceRecord is an issued invoice, used to attribute card-channel sales.
type InvoiceRecord struct {
	Fecha   string `json:"fecha"`
	Cuenta  string `json:"cuenta"`
	Numero  string `json:"numero"`
	Importe Monto  `json:"importe"`
}

// CuentaCorriente is one accounts-receivable balance row.
type CuentaCorriente struct {
	Cliente          string `json:"cliente"`
	Saldo            Monto  `json:"saldo"`
	UltimoMovimiento string `json:"ultimo_movimiento"`
}

// FacturaProveedor is one vendor invoice row.
type FacturaProveedor struct {
	Proveedor   string `json:"proveedor"`
	Numero      string `json:"numero"`
	Fecha       string `json:"fecha"`
	Vencimiento string `json:"vencimiento"`
	Importe     Monto  `json:"importe"`
	Estado      string `json:"estado"`
}

// FleetPosition is one GPS ping. Latitude and longitude arrive as strings
// from the tracking provider and are passed through unparsed.
type FleetPosition struct {
	Patente   string `json:"patente"`
	Empresa   string `json:"empresa"`
	Latitud   string `json:"latitud"`
	Longitud  string `json:"longitud"`
	Fecha     string `json:"fecha"`
	Velocidad Monto  `json:"velocidad"`
	Evento    string `json:"evento"`
}

// FleetUnit is the per-company rollup of fleet activity.
type FleetUnit struct {
	Empresa         string `json:"empresa"`
	UnidadesActivas int    `json:"unidades_activas"`
	UnidadesTotales int    `json:"unidades_totales"`
}
