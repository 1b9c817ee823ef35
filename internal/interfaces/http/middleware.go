package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// HeaderUserID cabecera con el usuario que ejecuta la operación (solo atribución, sin autenticación).
const HeaderUserID = "X-User-ID"

// LocalUserID clave en c.Locals para el usuario actuante.
const LocalUserID = "user_id"

// ActorMiddleware copia X-User-ID a c.Locals para atribuir movimientos y cambios de precio.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := strings.TrimSpace(c.Get(HeaderUserID)); id != "" {
			c.Locals(LocalUserID, id)
		}
		return c.Next()
	}
}

// GetUserID devuelve el usuario actuante o "" si la petición no lo indica.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// RequestLogger registra una línea por petición (método, ruta, estado, latencia).
// Los errores se resuelven aquí con el ErrorHandler de la app para registrar el estado final.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}
