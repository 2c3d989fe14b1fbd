package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/cosecha-api/internal/interfaces/http"
	"github.com/jhoicas/cosecha-api/pkg/logger"
)

// app sin auth: aquí solo interesa la validación de query params, que corta
// antes de tocar los casos de uso.
func buildBIApp() *fiber.App {
	app := fiber.New()
	h := apphttp.NewBIHandler(nil, nil, logger.Nop())
	app.Get("/api/bi", h.Get)
	app.Get("/api/bi/availability", h.Availability)
	return app
}

func TestBIHandler_ConfigIDRequerido(t *testing.T) {
	app := buildBIApp()

	for _, path := range []string{"/api/bi", "/api/bi/availability"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "VALIDATION", path)
	}
}

func TestBIHandler_FechaDeInteresInvalida(t *testing.T) {
	app := buildBIApp()

	req := httptest.NewRequest(http.MethodGet, "/api/bi?configId=cfg1&dateOfInterest=10-05-2025", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "RFC 3339")
}
