package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPosiciones(t *testing.T) {
	client := fakeBackend(t, map[string]string{
		"/flota/posiciones": `{"ok":true,"data":[
			{"patente":"AB123CD","empresa":"Bauhaus","fecha":"2025-03-10T08:00:00Z","velocidad":60},
			{"patente":"AB123CD","empresa":"Bauhaus","fecha":"2025-03-10T11:00:00Z","velocidad":0},
			{"patente":"XY999ZZ","empresa":"Bauhaus","fecha":"2025-03-08T10:00:00Z","velocidad":40}
		]}`,
	}, nil)

	gin.SetMode(gin.TestMode)
	h := NewFleetHandler(client, zerolog.Nop())
	h.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/api/flota/posiciones", h.GetPosiciones)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flota/posiciones", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posiciones []struct {
			Patente string `json:"patente"`
			Fecha   string `json:"fecha"`
			Activa  bool   `json:"activa"`
		} `json:"posiciones"`
		Unidades []struct {
			Empresa         string `json:"empresa"`
			UnidadesActivas int    `json:"unidades_activas"`
			UnidadesTotales int    `json:"unidades_totales"`
		} `json:"unidades"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Posiciones, 2)
	assert.Equal(t, "AB123CD", resp.Posiciones[0].Patente)
	assert.Equal(t, "2025-03-10T11:00:00Z", resp.Posiciones[0].Fecha)
	assert.True(t, resp.Posiciones[0].Activa)
	assert.False(t, resp.Posiciones[1].Activa)

	require.Len(t, resp.Unidades, 1)
	assert.Equal(t, "Bauhaus", resp.Unidades[0].Empresa)
	assert.Equal(t, 1, resp.Unidades[0].UnidadesActivas)
	assert.Equal(t, 2, resp.Unidades[0].UnidadesTotales)
}

func TestGetPosiciones_BackendCaido(t *testing.T) {
	client := fakeBackend(t, nil, map[string]int{
		"/flota/posiciones": http.StatusBadGateway,
	})

	gin.SetMode(gin.TestMode)
	h := NewFleetHandler(client, zerolog.Nop())
	r := gin.New()
	r.GET("/api/flota/posiciones", h.GetPosiciones)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flota/posiciones", nil))

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error al obtener posiciones de flota")
}
