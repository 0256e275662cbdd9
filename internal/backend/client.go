package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bauhaus-reports-api/internal/config"

	"github.com/rs/zerolog"
)

// Client talks to the upstream Bauhaus REST backend. One method per
// endpoint, single attempt per call, errors describe the failing resource
// in Spanish as the dashboard expects.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(cfg config.BackendConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

// envelope is the {ok, data} wrapper most endpoints use. A few legacy
// endpoints return a bare JSON array instead.
type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

// getList issues a GET and decodes the payload into out, accepting both
// enveloped and bare-array bodies.
func (c *Client) getList(ctx context.Context, path string, params url.Values, recurso string, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("error al obtener %s: %w", recurso, err)
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("error al obtener %s: %w", recurso, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error al obtener %s: estado HTTP %d", recurso, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error al obtener %s: %w", recurso, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("error al obtener %s: %w", recurso, err)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("error al obtener %s: respuesta inválida del backend", recurso)
	}
	if !env.Ok || env.Data == nil {
		return fmt.Errorf("error al obtener %s: el backend respondió ok=false", recurso)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("error al obtener %s: %w", recurso, err)
	}
	return nil
}

// send issues a mutating request with a JSON body and the bearer token.
func (c *Client) send(ctx context.Context, method, path string, payload any, recurso string, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("error al enviar %s: %w", recurso, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error al enviar %s: %w", recurso, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("error al enviar %s: %w", recurso, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("error al enviar %s: estado HTTP %d", recurso, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error al enviar %s: %w", recurso, err)
	}
	raw = bytes.TrimSpace(raw)

	var env envelope
	if len(raw) > 0 && raw[0] == '{' && json.Unmarshal(raw, &env) == nil && env.Data != nil {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error al enviar %s: %w", recurso, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// rangoFechas builds the fechaInicio/fechaFin pair in YYYY-MM-DD form.
// Empty values are omitted so the backend applies its own defaults.
func rangoFechas(inicio, fin string) url.Values {
	params := url.Values{}
	if inicio != "" {
		params.Set("fechaInicio", inicio)
	}
	if fin != "" {
		params.Set("fechaFin", fin)
	}
	return params
}

// rangoFechasCompacto is the YYYYMMDD variant the POS subdiario endpoint
// insists on.
func rangoFechasCompacto(inicio, fin string) url.Values {
	params := url.Values{}
	if inicio != "" {
		params.Set("fechaInicio", strings.ReplaceAll(inicio, "-", ""))
	}
	if fin != "" {
		params.Set("fechaFin", strings.ReplaceAll(fin, "-", ""))
	}
	return params
}

// toFloat coerces the loosely typed numerics the backend emits. Anything
// unparseable counts as zero; the caller decides whether to log it.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", "."))
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
