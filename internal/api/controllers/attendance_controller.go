package controllers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/perrors"
	"github.com/adilsaaly/trackport/internal/services"
	"github.com/adilsaaly/trackport/internal/services/attendance"
)

func RegisterAttendanceRoutes(r *router.Router, svc *services.Services) {
	// Start a work session.
	r.POST("/api/attendance/start", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req attendance.StartRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		rec, err := svc.Attendance.Start(stdCtx, &req)
		if err != nil {
			switch {
			case errors.Is(err, attendance.ErrMissingFields):
				writeError(ctx, stdCtx, "userId and loginTime are required", perrors.NewErrInvalidRequest("userId and loginTime are required", err))
			case errors.Is(err, attendance.ErrAlreadyClockedIn):
				writeError(ctx, stdCtx, "Work session already active", perrors.NewErrInvalidRequest("Work session already active", err))
			default:
				writeError(ctx, stdCtx, "Failed to start work", perrors.NewErrInternalServerError("Failed to start work", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Work started successfully", rec)
	})

	// End the open work session.
	r.POST("/api/attendance/end", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req attendance.EndRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		rec, err := svc.Attendance.End(stdCtx, &req)
		if err != nil {
			switch {
			case errors.Is(err, attendance.ErrMissingFields):
				writeError(ctx, stdCtx, "userId and logoutTime are required", perrors.NewErrInvalidRequest("userId and logoutTime are required", err))
			case errors.Is(err, attendance.ErrNoActiveSession):
				writeError(ctx, stdCtx, "No active work session", perrors.NewErrInvalidRequest("No active work session", err))
			default:
				writeError(ctx, stdCtx, "Failed to end work", perrors.NewErrInternalServerError("Failed to end work", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Work ended successfully", rec)
	})

	// Current open session, if any.
	r.GET("/api/attendance/open", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, err := requireUUIDQuery(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "userId parameter is required", perrors.NewErrInvalidRequest("userId parameter is required", err))
			return
		}

		rec, err := svc.Attendance.Open(stdCtx, userID)
		if err != nil {
			if errors.Is(err, attendance.ErrNoActiveSession) {
				writeOK(ctx, stdCtx, "No active work session", nil)
				return
			}
			writeError(ctx, stdCtx, "Failed to fetch open session", perrors.NewErrInternalServerError("Failed to fetch open session", err))
			return
		}

		writeOK(ctx, stdCtx, "Open session retrieved successfully", rec)
	})

	// Session history, newest first.
	r.GET("/api/attendance/history", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, err := requireUUIDQuery(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "userId parameter is required", perrors.NewErrInvalidRequest("userId parameter is required", err))
			return
		}

		recs, err := svc.Attendance.History(stdCtx, userID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to fetch attendance history", perrors.NewErrInternalServerError("Failed to fetch attendance history", err))
			return
		}

		writeOK(ctx, stdCtx, "Attendance history retrieved successfully", recs)
	})

	// Live elapsed-seconds stream for the open session. The stream is
	// presentation only; the persisted duration is still computed at end.
	r.GET("/api/attendance/live", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, err := requireUUIDQuery(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "userId parameter is required", perrors.NewErrInvalidRequest("userId parameter is required", err))
			return
		}

		rec, err := svc.Attendance.Open(stdCtx, userID)
		if err != nil {
			if errors.Is(err, attendance.ErrNoActiveSession) {
				writeError(ctx, stdCtx, "No active work session", perrors.NewErrInvalidRequest("No active work session", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to fetch open session", perrors.NewErrInternalServerError("Failed to fetch open session", err))
			return
		}

		ctx.Response.Header.Set("Content-Type", "text/event-stream")
		ctx.Response.Header.Set("Cache-Control", "no-cache")
		ctx.Response.Header.Set("Connection", "keep-alive")

		since := rec.LoginTime
		ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
			streamCtx, cancel := context.WithTimeout(context.Background(), time.Hour)
			defer cancel()

			ticker := attendance.NewTicker()
			for elapsed := range ticker.Elapsed(streamCtx, since) {
				if _, err := fmt.Fprintf(w, "data: %d\n\n", elapsed); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		})
	})
}
