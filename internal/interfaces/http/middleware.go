package http

import (
	"net"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// requestObserver contrato mínimo de métricas HTTP. Lo implementa *metrics.Registry.
type requestObserver interface {
	RequestStarted() func(method, route string, status int)
}

// RequestLogger registra cada petición (método, ruta, estado, latencia, request id) y alimenta
// las métricas. Los errores del handler se resuelven aquí con el ErrorHandler de la app para
// conocer el estado final.
func RequestLogger(log zerolog.Logger, obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		var done func(method, route string, status int)
		if obs != nil {
			done = obs.RequestStarted()
		}

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		if done != nil {
			done(c.Method(), route, status)
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Msg("petición HTTP")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

// AllowedHosts rechaza con 400 las peticiones cuyo Host no está en la lista.
// "*" acepta cualquiera; un valor con punto inicial (".example.com") acepta el dominio y sus subdominios.
func AllowedHosts(hosts []string) fiber.Handler {
	anyHost := false
	allowed := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "*" {
			anyHost = true
		}
		if h != "" {
			allowed = append(allowed, h)
		}
	}
	return func(c *fiber.Ctx) error {
		if anyHost || hostAllowed(hostOnly(c.Hostname()), allowed) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid HTTP_HOST header.")
	}
}

func hostOnly(hostport string) string {
	host := strings.ToLower(hostport)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(strings.Trim(host, "[]"), ".")
}

func hostAllowed(host string, allowed []string) bool {
	if host == "" {
		return false
	}
	for _, a := range allowed {
		if strings.HasPrefix(a, ".") {
			if host == a[1:] || strings.HasSuffix(host, a) {
				return true
			}
			continue
		}
		if host == a {
			return true
		}
	}
	return false
}
