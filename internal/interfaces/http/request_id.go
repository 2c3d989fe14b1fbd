package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID cabecera con el identificador de la petición.
const HeaderRequestID = "X-Request-Id"

// RequestID asigna un identificador único a cada petición (o respeta el que
// venga del proxy) y lo expone en c.Locals y en la respuesta, para correlación
// en los logs.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
