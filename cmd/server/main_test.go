package main

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrecruit/recruit-backend/internal/config"
	"github.com/vrecruit/recruit-backend/internal/middleware"
)

func TestNewApp(t *testing.T) {
	app := newApp(&config.AppConfig{
		Name:         "test",
		Env:          "production",
		Port:         ":0",
		AllowOrigins: "*",
	}, middleware.NewMetrics(prometheus.NewRegistry()))

	t.Run("health endpoints", func(t *testing.T) {
		for _, path := range []string{"/livez", "/readyz"} {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode, path)
		}
	})

	t.Run("unknown route uses error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"success": false, "message": "Cannot GET /nope"}`, string(body))
	})

	t.Run("metrics exposition", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "vrecruit_http_requests_total")
	})
}
