package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bellinicahuanadevelopment/gestor-textil/internal/domain"
)

// pathID devuelve el parámetro de ruta validado como UUID. Un id
// malformado no identifica ningún recurso: se responde 404 aquí, antes
// de que el valor llegue a una comparación con columnas uuid en la BD.
func pathID(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", domain.ErrNotFound
	}
	return raw, nil
}
