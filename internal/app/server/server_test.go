package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"francoggm/wiinpay-pix-relay/internal/app/payment"
	"francoggm/wiinpay-pix-relay/internal/app/pix"
	"francoggm/wiinpay-pix-relay/internal/app/server/handlers"
	"francoggm/wiinpay-pix-relay/internal/config"
	"francoggm/wiinpay-pix-relay/internal/metrics"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type providerStub struct {
	calls   atomic.Int32
	lastReq atomic.Value
	status  int
	ctype   string
	body    string
}

func (p *providerStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.calls.Add(1)
	raw, _ := io.ReadAll(r.Body)
	p.lastReq.Store(raw)

	w.Header().Set("Content-Type", p.ctype)
	w.WriteHeader(p.status)
	_, _ = w.Write([]byte(p.body))
}

func newTestServer(t *testing.T, stub *providerStub, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	provider := httptest.NewServer(stub)
	t.Cleanup(provider.Close)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>spa</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, ".env"), []byte("WIINPAY_API_KEY=secret-key"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "server"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "server", ".env"), []byte("WIINPAY_API_KEY=secret-key-2"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, ".git", "config"), []byte("[core]"), 0o600))

	cfg := &config.Config{
		WiinPay: config.WiinPay{
			APIKey:  "secret-key",
			APIURL:  provider.URL + "/payment/create",
			Timeout: 2 * time.Second,
		},
		Webhook: config.Webhook{PublicBaseURLs: []string{"https://relay.example.com"}},
		Static:  config.Static{Dir: staticDir},
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := zap.NewNop()
	m := metrics.New()
	svc := pix.NewService(cfg, payment.NewClient(cfg.WiinPay.Timeout), m, logger)
	srv := NewServer(cfg, handlers.NewHandlers(svc, logger, nil), m, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestCreatePixScenario(t *testing.T) {
	stub := &providerStub{
		status: http.StatusOK,
		ctype:  "application/json",
		body:   `{"data":{"id":"x","pix_copia_cola":"00020126"}}`,
	}
	ts := newTestServer(t, stub, nil)

	resp, body := postJSON(t, ts.URL+"/api/wiinpay/pix/create", `{"value":10,"name":"Ana","email":"a@b.com"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"id": "x", "pix_copia_cola": "00020126", "qr_code": "00020126"}, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var sent map[string]any
	require.NoError(t, sonic.Unmarshal(stub.lastReq.Load().([]byte), &sent))
	assert.Equal(t, map[string]any{
		"api_key":     "secret-key",
		"value":       10.0,
		"name":        "Ana",
		"email":       "a@b.com",
		"description": "Pagamento PIX",
		"webhook_url": "https://relay.example.com/api/wiinpay/webhook",
	}, sent)
}

func TestCreatePixLowValueNeverCallsProvider(t *testing.T) {
	stub := &providerStub{status: http.StatusOK, ctype: "application/json", body: `{}`}
	ts := newTestServer(t, stub, nil)

	for _, body := range []string{
		`{"value":2.99,"name":"Ana","email":"a@b.com"}`,
		`{"value":"abc","name":"Ana","email":"a@b.com"}`,
		`{"name":"Ana","email":"a@b.com"}`,
		`{"value":10,"name":"  ","email":"a@b.com"}`,
		`{"value":10,"name":"Ana","email":""}`,
	} {
		resp, decoded := postJSON(t, ts.URL+"/api/wiinpay/pix/create", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.NotEmpty(t, decoded["error"])
	}

	assert.Zero(t, stub.calls.Load())
}

func TestCreatePixMissingAPIKey(t *testing.T) {
	stub := &providerStub{status: http.StatusOK, ctype: "application/json", body: `{}`}
	ts := newTestServer(t, stub, func(cfg *config.Config) { cfg.WiinPay.APIKey = "" })

	resp, body := postJSON(t, ts.URL+"/api/wiinpay/pix/create", `{"value":10,"name":"Ana","email":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "WIINPAY_API_KEY")
	assert.Zero(t, stub.calls.Load())
}

func TestCreatePixSelfReferentialWebhook(t *testing.T) {
	stub := &providerStub{status: http.StatusOK, ctype: "application/json", body: `{}`}
	ts := newTestServer(t, stub, func(cfg *config.Config) {
		cfg.Webhook.ExplicitURL = "https://api-v2.wiinpay.com.br/callback"
	})

	resp, body := postJSON(t, ts.URL+"/api/wiinpay/pix/create", `{"value":10,"name":"Ana","email":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Webhook inválido", body["error"])
	assert.NotEmpty(t, body["details"])
	assert.Zero(t, stub.calls.Load())
}

func TestCreatePixUpstreamFailureProxied(t *testing.T) {
	stub := &providerStub{
		status: http.StatusUnprocessableEntity,
		ctype:  "application/json",
		body:   `{"message":"invalid email","fields":{"email":["invalid"]},"code":42}`,
	}
	ts := newTestServer(t, stub, nil)

	resp, body := postJSON(t, ts.URL+"/api/wiinpay/pix/create", `{"value":10,"name":"Ana","email":"a@b.com"}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Falha ao criar pagamento na WiinPay", body["error"])
	assert.Equal(t, 422.0, body["wiinpay_status"])
	assert.Equal(t, map[string]any{
		"message": "invalid email",
		"fields":  map[string]any{"email": []any{"invalid"}},
		"code":    42.0,
	}, body["wiinpay_response"])
}

func TestCreatePixMalformedProviderJSON(t *testing.T) {
	stub := &providerStub{status: http.StatusOK, ctype: "application/json", body: `{"id":`}
	ts := newTestServer(t, stub, nil)

	resp, body := postJSON(t, ts.URL+"/api/wiinpay/pix/create", `{"value":10,"name":"Ana","email":"a@b.com"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Erro interno ao criar Pix", body["error"])
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestWebhookScenario(t *testing.T) {
	ts := newTestServer(t, &providerStub{}, nil)

	resp, body := postJSON(t, ts.URL+"/api/wiinpay/webhook", `{"id":1,"status":"PAID"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"ok": true, "status": "paid"}, body)
}

func TestHealthAndRequestIDEcho(t *testing.T) {
	ts := newTestServer(t, &providerStub{}, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "trace-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, "trace-123", resp.Header.Get("X-Request-Id"))
}

func TestSPAFallback(t *testing.T) {
	ts := newTestServer(t, &providerStub{}, nil)

	tests := map[string]string{
		"/":                  "<html>spa</html>",
		"/checkout/step/2":   "<html>spa</html>",
		"/assets":            "<html>spa</html>",
		"/assets/app.js":     "console.log(1)",
		"/assets/missing.js": "<html>spa</html>",
		"/.env":              "<html>spa</html>",
		"/server/.env":       "<html>spa</html>",
		"/.git/config":       "<html>spa</html>",
	}

	for path, want := range tests {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, want, string(raw), path)
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"), path)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, &providerStub{}, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/wiinpay/pix/create", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &providerStub{}, nil)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestSPANeverServesDotfiles(t *testing.T) {
	ts := newTestServer(t, &providerStub{}, nil)

	for _, path := range []string{"/.env", "/server/.env", "/assets/../.env", "/.git/config"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.NotContains(t, string(raw), "WIINPAY_API_KEY", path)
		assert.NotContains(t, string(raw), "[core]", path)
	}
}
