package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ugelsanta/expedientes-api/pkg/logger"
)

// RequestLogger registra cada petición con su latencia; el nivel depende del status.
// Debe ir después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de registrar.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev = ev.
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.IP())
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
			ev = ev.Str("request_id", rid)
		}
		if u := GetUsuario(c); u != "" {
			ev = ev.Str("usuario", u)
		}
		if q := string(c.Request().URI().QueryString()); q != "" {
			ev = ev.Str("query", q)
		}
		ev.Msg("request completed")
		return nil
	}
}
