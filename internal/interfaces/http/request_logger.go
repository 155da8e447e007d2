package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Los errores devueltos por la cadena se resuelven aquí con el ErrorHandler para loguear el status real.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
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
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("vendor_id", GetVendorID(c)).
			Msg("request")
		return nil
	}
}
