package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/api/authenticator"
	"github.com/adilsaaly/trackport/internal/perrors"
	"github.com/adilsaaly/trackport/internal/services/navigation"
)

type navigationResponse struct {
	Categories []navigation.Category `json:"categories"`
	Landing    string                `json:"landing"`
}

func RegisterNavigationRoutes(r *router.Router, auth *authenticator.Authenticator) {
	// Menu and landing dashboard for the signed-in role. An unknown role
	// gets an empty menu, never an error.
	r.GET("/api/navigation", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := sessionClaims(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		cats := navigation.Visible(claims.Role, navigation.Catalog())
		if cats == nil {
			cats = []navigation.Category{}
		}

		writeOK(ctx, stdCtx, "Navigation retrieved successfully", navigationResponse{
			Categories: cats,
			Landing:    navigation.LandingPath(claims.Role),
		})
	})
}
