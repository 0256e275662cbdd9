package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bauhaus-reports-api/internal/backend"
	"bauhaus-reports-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend levanta un backend upstream de prueba que responde según la
// ruta. Las rutas sin respuesta definida devuelven una lista vacía.
func fakeBackend(t *testing.T, respuestas map[string]string, fallas map[string]int) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code, ok := fallas[r.URL.Path]; ok {
			w.WriteHeader(code)
			return
		}
		if body, ok := respuestas[r.URL.Path]; ok {
			w.Write([]byte(body))
			return
		}
		w.Write([]byte(`{"ok":true,"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	return backend.NewClient(config.BackendConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
}

func reportsRouter(client *backend.Client, ahora time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReportsHandler(client, zerolog.Nop())
	h.now = func() time.Time { return ahora }

	r := gin.New()
	r.GET("/api/reportes/subdiario", h.GetSubdiario)
	r.GET("/api/reportes/consumos", h.GetConsumos)
	r.GET("/api/reportes/ventas-diarias", h.GetVentasDiarias)
	r.GET("/api/reportes/cuentas-corrientes", h.GetCuentasCorrientes)
	r.GET("/api/reportes/facturas-proveedores", h.GetFacturasProveedores)
	return r
}

func TestGetSubdiario_UnificaLasCuatroFuentes(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, map[string]string{
		"/reportes/combustibles": `{"ok":true,"data":[
			{"fecha":"2025-03-01","total_dinero_dia":500},
			{"fecha":"2025-03-02","total_dinero_dia":700}
		]}`,
		"/reportes/gnc": `{"ok":true,"data":[
			{"fecha":"2025-03-01","total_gnc_pesos":120}
		]}`,
		"/reportes/otras-ventas": `{"ok":true,"data":[
			{"fecha":"2025-03-02","total_otras_pesos":30}
		]}`,
		"/reportes/shop": `{"ok":true,"data":[]}`,
	}, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/subdiario", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp SubdiarioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Una fila por fecha, orden descendente por defecto.
	require.Len(t, resp.Filas, 2)
	assert.Equal(t, "02-03", resp.Filas[0].Clave)
	assert.Equal(t, "01-03", resp.Filas[1].Clave)

	assert.Equal(t, 500.0, resp.Filas[1].Campos["total_dinero_dia"])
	assert.Equal(t, 120.0, resp.Filas[1].Campos["total_gnc_pesos"])

	assert.Equal(t, 1200.0, resp.Totales["total_dinero_dia"])
	assert.Equal(t, "1.200,00", resp.TotalesFormateados["total_dinero_dia"])
	assert.Equal(t, 10, resp.DiasTranscurridos)
	assert.Equal(t, 31, resp.DiasDelMes)
	assert.InDelta(t, 3720.0, resp.Proyeccion["total_dinero_dia"], 1e-6)
}

func TestGetSubdiario_UnaFuenteCaidaFallaTodo(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, nil, map[string]int{
		"/reportes/gnc": http.StatusInternalServerError,
	})

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/subdiario", nil))

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error al obtener GNC")
}

func TestGetSubdiario_OrdenAscendente(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, map[string]string{
		"/reportes/combustibles": `{"ok":true,"data":[
			{"fecha":"2025-03-05","total_dinero_dia":1},
			{"fecha":"2025-03-02","total_dinero_dia":1}
		]}`,
	}, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/subdiario?orden=asc", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp SubdiarioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Filas, 2)
	assert.Equal(t, "02-03", resp.Filas[0].Clave)
	assert.Equal(t, "05-03", resp.Filas[1].Clave)
}

func TestGetVentasDiarias(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, map[string]string{
		"/subdiario/pos": `{"ok":true,"data":[
			{"fecha":"2025-03-05","producto":"QUANTIUM DIESEL","categoria":"diesel","caja":"CAJA 1","litros":10,"importe":1000}
		]}`,
		"/facturas": `{"ok":true,"data":[
			{"fecha":"2025-03-05","cuenta":"AXION CARD","numero":"0001-1"}
		]}`,
	}, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/ventas-diarias", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Ventas []struct {
			Canal          string  `json:"canal"`
			TotalFacturado float64 `json:"total_facturado"`
		} `json:"ventas"`
		TotalAC float64 `json:"total_ac"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Ventas, 1)
	assert.Equal(t, "ac", resp.Ventas[0].Canal)
	assert.Equal(t, 1210.0, resp.Ventas[0].TotalFacturado)
	assert.Equal(t, 1210.0, resp.TotalAC)
}

func TestGetVentasDiarias_RangoVacio(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, nil, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/ventas-diarias", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "advertencia")
	assert.Contains(t, w.Body.String(), "filas de ejemplo")
}

func TestGetCuentasCorrientes(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, map[string]string{
		"/cuentas-corrientes": `{"ok":true,"data":[
			{"cliente":"Transporte Sur","saldo":"1000,50"},
			{"cliente":"Agro SA","saldo":234}
		]}`,
	}, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/cuentas-corrientes", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SaldoTotal      float64 `json:"saldo_total"`
		SaldoFormateado string  `json:"saldo_formateado"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1234.5, resp.SaldoTotal)
	assert.Equal(t, "1.234,50", resp.SaldoFormateado)
}

func TestGetFacturasProveedores_ExcluyePagadas(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, map[string]string{
		"/facturas-proveedores": `{"ok":true,"data":[
			{"proveedor":"YPF","importe":1000,"estado":"pendiente"},
			{"proveedor":"Shell","importe":500,"estado":"pagada"}
		]}`,
	}, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/facturas-proveedores", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PendienteTotal float64 `json:"pendiente_total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1000.0, resp.PendienteTotal)
}

func TestGetConsumos(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	client := fakeBackend(t, map[string]string{
		"/consumos": `{"ok":true,"data":[
			{"fecha":"2025-03-01","categoria":"nafta super","volumen":100,"importe":120000},
			{"fecha":"2025-03-02","categoria":"infinia","volumen":50,"importe":75000}
		]}`,
	}, nil)

	r := reportsRouter(client, ahora)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reportes/consumos", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Consumos []struct {
			Categoria string  `json:"categoria"`
			Mes       string  `json:"mes"`
			Volumen   float64 `json:"volumen"`
		} `json:"consumos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Consumos, 1)
	assert.Equal(t, "COMBUSTIBLES", resp.Consumos[0].Categoria)
	assert.Equal(t, "2025-03", resp.Consumos[0].Mes)
	assert.Equal(t, 150.0, resp.Consumos[0].Volumen)
}
