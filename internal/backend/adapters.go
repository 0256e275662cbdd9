package backend

import (
	"context"
	"fmt"

	"bauhaus-reports-api/internal/models"
)

// dailyRecords fetches one subdiario source and validates it into
// DailyRecord rows. Every non-fecha field is coerced to float64 at this
// boundary; unparseable values become zero and are logged once per row.
func (c *Client) dailyRecords(ctx context.Context, path, recurso, inicio, fin string) ([]models.DailyRecord, error) {
	var raw []map[string]any
	if err := c.getList(ctx, path, rangoFechas(inicio, fin), recurso, &raw); err != nil {
		return nil, err
	}

	records := make([]models.DailyRecord, 0, len(raw))
	for _, fila := range raw {
		fecha, _ := fila["fecha"].(string)
		if fecha == "" {
			c.log.Warn().Str("recurso", recurso).Msg("fila sin fecha descartada")
			continue
		}

		campos := make(map[string]float64, len(fila)-1)
		for k, v := range fila {
			if k == "fecha" {
				continue
			}
			f, ok := toFloat(v)
			if !ok {
				c.log.Warn().Str("recurso", recurso).Str("campo", k).Str("fecha", fecha).
					Msg("valor no numérico coercionado a cero")
			}
			campos[k] = f
		}
		records = append(records, models.DailyRecord{Fecha: fecha, Campos: campos})
	}
	return records, nil
}

// SubdiarioCombustibles returns the daily liquid-fuel report rows.
func (c *Client) SubdiarioCombustibles(ctx context.Context, inicio, fin string) ([]models.DailyRecord, error) {
	return c.dailyRecords(ctx, "/reportes/combustibles", "combustibles líquidos", inicio, fin)
}

// SubdiarioGNC returns the daily GNC report rows.
func (c *Client) SubdiarioGNC(ctx context.Context, inicio, fin string) ([]models.DailyRecord, error) {
	return c.dailyRecords(ctx, "/reportes/gnc", "GNC", inicio, fin)
}

// SubdiarioOtrasVentas returns the daily lubricants/AdBlue/other rows.
func (c *Client) SubdiarioOtrasVentas(ctx context.Context, inicio, fin string) ([]models.DailyRecord, error) {
	return c.dailyRecords(ctx, "/reportes/otras-ventas", "otras ventas", inicio, fin)
}

// SubdiarioShop returns the daily shop report rows.
func (c *Client) SubdiarioShop(ctx context.Context, inicio, fin string) ([]models.DailyRecord, error) {
	return c.dailyRecords(ctx, "/reportes/shop", "ventas de shop", inicio, fin)
}

// Tanques returns the current per-tank telemetry.
func (c *Client) Tanques(ctx context.Context) ([]models.TankLevel, error) {
	var tanques []models.TankLevel
	if err := c.getList(ctx, "/tanques", nil, "tanques", &tanques); err != nil {
		return nil, err
	}
	return tanques, nil
}

// CambiarEstadoTanque toggles a tank's active flag on the backend.
func (c *Client) CambiarEstadoTanque(ctx context.Context, id int, activo bool) error {
	payload := map[string]bool{"activo": activo}
	return c.send(ctx, "PUT", fmt.Sprintf("/tanques/update/%d", id), payload, "estado de tanque", nil)
}

// Consumos returns the raw POS category/product rows for the monthly
// consumption report.
func (c *Client) Consumos(ctx context.Context, inicio, fin string) ([]models.ConsumoRow, error) {
	var rows []models.ConsumoRow
	if err := c.getList(ctx, "/consumos", rangoFechas(inicio, fin), "consumos", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// VentasPOS returns subdiario POS line items. This is the one endpoint
// that takes its dates as YYYYMMDD.
func (c *Client) VentasPOS(ctx context.Context, inicio, fin string) ([]models.PosLineItem, error) {
	var lineas []models.PosLineItem
	if err := c.getList(ctx, "/subdiario/pos", rangoFechasCompacto(inicio, fin), "ventas diarias", &lineas); err != nil {
		return nil, err
	}
	return lineas, nil
}

// Facturas returns issued invoices for the range.
func (c *Client) Facturas(ctx context.Context, inicio, fin string) ([]models.InvoiceRecord, error) {
	var facturas []models.InvoiceRecord
	if err := c.getList(ctx, "/facturas", rangoFechas(inicio, fin), "facturas", &facturas); err != nil {
		return nil, err
	}
	return facturas, nil
}

// CuentasCorrientes returns the accounts-receivable balances.
func (c *Client) CuentasCorrientes(ctx context.Context) ([]models.CuentaCorriente, error) {
	var cuentas []models.CuentaCorriente
	if err := c.getList(ctx, "/cuentas-corrientes", nil, "cuentas corrientes", &cuentas); err != nil {
		return nil, err
	}
	return cuentas, nil
}

// FacturasProveedores returns vendor invoices for the range.
func (c *Client) FacturasProveedores(ctx context.Context, inicio, fin string) ([]models.FacturaProveedor, error) {
	var facturas []models.FacturaProveedor
	if err := c.getList(ctx, "/facturas-proveedores", rangoFechas(inicio, fin), "facturas de proveedores", &facturas); err != nil {
		return nil, err
	}
	return facturas, nil
}

// PosicionesFlota returns all recent GPS pings for the fleet.
func (c *Client) PosicionesFlota(ctx context.Context) ([]models.FleetPosition, error) {
	var posiciones []models.FleetPosition
	if err := c.getList(ctx, "/flota/posiciones", nil, "posiciones de flota", &posiciones); err != nil {
		return nil, err
	}
	return posiciones, nil
}

// Usuarios returns the backend user list.
func (c *Client) Usuarios(ctx context.Context) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := c.getList(ctx, "/usuarios", nil, "usuarios", &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// Empresas returns the company reference list.
func (c *Client) Empresas(ctx context.Context) ([]models.Empresa, error) {
	var empresas []models.Empresa
	if err := c.getList(ctx, "/empresas", nil, "empresas", &empresas); err != nil {
		return nil, err
	}
	return empresas, nil
}

// Roles returns the role reference list.
func (c *Client) Roles(ctx context.Context) ([]models.Rol, error) {
	var roles []models.Rol
	if err := c.getList(ctx, "/roles", nil, "roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// PermisosDeUsuario returns the permissions assigned to one user.
func (c *Client) PermisosDeUsuario(ctx context.Context, usuarioID int) ([]models.Permiso, error) {
	var permisos []models.Permiso
	path := fmt.Sprintf("/usuarios/%d/permisos", usuarioID)
	if err := c.getList(ctx, path, nil, "permisos de usuario", &permisos); err != nil {
		return nil, err
	}
	return permisos, nil
}

// CrearUsuario creates a user on the backend.
func (c *Client) CrearUsuario(ctx context.Context, req models.CreateUsuarioRequest) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := c.send(ctx, "POST", "/usuarios/create", req, "alta de usuario", &usuario); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// ActualizarUsuario updates a user on the backend.
func (c *Client) ActualizarUsuario(ctx context.Context, id int, req models.UpdateUsuarioRequest) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := c.send(ctx, "PUT", fmt.Sprintf("/usuarios/update/%d", id), req, "actualización de usuario", &usuario); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// AgregarPermiso grants a permission to a user.
func (c *Client) AgregarPermiso(ctx context.Context, usuarioID, permisoID int) error {
	payload := map[string]int{"usuario_id": usuarioID, "permiso_id": permisoID}
	return c.send(ctx, "POST", "/usuarios/permisos/add", payload, "alta de permiso", nil)
}

// QuitarPermiso revokes a permission from a user.
func (c *Client) QuitarPermiso(ctx context.Context, usuarioID, permisoID int) error {
	payload := map[string]int{"usuario_id": usuarioID, "permiso_id": permisoID}
	return c.send(ctx, "POST", "/usuarios/permisos/remove", payload, "baja de permiso", nil)
}
