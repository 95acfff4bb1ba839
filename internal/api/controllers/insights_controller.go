package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/perrors"
	"github.com/adilsaaly/trackport/internal/services"
)

func RegisterInsightsRoutes(r *router.Router, svc *services.Services) {
	// Per-project assignment stats plus an optional model-written summary.
	r.GET("/api/analytics/projects", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		summary, err := svc.Insights.Summarize(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to build project analytics", perrors.NewErrInternalServerError("Failed to build project analytics", err))
			return
		}

		writeOK(ctx, stdCtx, "Project analytics retrieved successfully", summary)
	})
}
