package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/application/dto"
)

func TestPathID_IDMalformadoEs404(t *testing.T) {
	app := fiber.New()
	app.Get("/recursos/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		return c.SendString(id)
	})

	// Un id que no es UUID no identifica nada: 404, nunca un error de la BD.
	resp, err := app.Test(httptest.NewRequest("GET", "/recursos/no-es-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Code)

	id := uuid.New().String()
	resp, err = app.Test(httptest.NewRequest("GET", "/recursos/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, id, string(raw))
}
