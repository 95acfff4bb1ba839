package api

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/propagation"

	"github.com/adilsaaly/trackport/internal/api/authenticator"
	"github.com/adilsaaly/trackport/internal/api/controllers"
	"github.com/adilsaaly/trackport/internal/config"
)

var tracePropagator = propagation.TraceContext{}

func (s *Server) initRoutes(conf *config.Config) fasthttp.RequestHandler {
	r := router.New()

	r.GET("/api/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	auth := authenticator.New(conf)

	controllers.RegisterAuthRoutes(r, s.services, auth)
	controllers.RegisterAttendanceRoutes(r, s.services)
	controllers.RegisterProjectRoutes(r, s.services, auth)
	controllers.RegisterTaskRoutes(r, s.services, auth)
	controllers.RegisterNavigationRoutes(r, auth)
	controllers.RegisterInsightsRoutes(r, s.services)

	return s.withMiddlewares(r.Handler, auth)
}

func (s *Server) withMiddlewares(next fasthttp.RequestHandler, auth *authenticator.Authenticator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		applyCORS(ctx)
		if string(ctx.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		start := time.Now()
		uri := ctx.URI()
		requestURI := string(uri.FullURI())
		slog.Info("Started processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI))

		h := http.Header{}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			h[string(k)] = []string{string(v)}
		})
		traceCtx := tracePropagator.Extract(ctx, propagation.HeaderCarrier(h))
		ctx.SetUserValue("traceCtx", traceCtx)

		// Session check. The cookie is the primary carrier; a bearer header is
		// accepted for non-browser clients.
		if !isPublicRoute(ctx) {
			token := string(ctx.Request.Header.Cookie(authenticator.CookieName))
			if token == "" {
				token = strings.TrimPrefix(string(ctx.Request.Header.Peek("Authorization")), "Bearer ")
			}

			claims, err := auth.VerifyToken(token)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue("userClaims", claims)
		}

		next(ctx)

		slog.Info("Finished processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI), slog.Duration("duration", time.Since(start)))
	}
}

func applyCORS(ctx *fasthttp.RequestCtx) {
	headers := &ctx.Response.Header
	headers.Set("Access-Control-Allow-Origin", string(ctx.Request.Header.Peek("Origin")))
	headers.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
	headers.Set("Access-Control-Allow-Headers", os.Getenv("ALLOWED_HEADERS"))
	headers.Set("Access-Control-Allow-Credentials", "true")
}

func isPublicRoute(ctx *fasthttp.RequestCtx) bool {
	path := string(ctx.Path())

	publicRoutes := []string{
		"/api/health",
		"/api/auth/sign-in",
		"/api/auth/pin-sign-in",
	}

	for _, route := range publicRoutes {
		if path == route {
			return true
		}
	}
	return false
}
