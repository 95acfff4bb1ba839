package controllers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/api/authenticator"
	"github.com/adilsaaly/trackport/internal/perrors"
	"github.com/adilsaaly/trackport/internal/services"
	"github.com/adilsaaly/trackport/internal/services/navigation"
	"github.com/adilsaaly/trackport/internal/services/user"
)

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PinSignInRequest struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

type SignInResponse struct {
	UserRole string `json:"userRole"`
	Redirect string `json:"redirect"`
}

type RegisterResponse struct {
	User *user.User `json:"user"`
}

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Sign in with email/password. Sets the session cookie on success.
	r.POST("/api/auth/sign-in", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req SignInRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		if !allowAttempt(ctx, stdCtx, svc, req.Email) {
			return
		}

		u, err := svc.User.Authenticate(stdCtx, req.Email, req.Password)
		if err != nil {
			writeSignInError(ctx, stdCtx, err)
			return
		}

		issueSession(ctx, stdCtx, auth, u)
	})

	// Sign in with email/PIN. Same contract as the password flow.
	r.POST("/api/auth/pin-sign-in", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req PinSignInRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}
		if req.Email == "" || req.Pin == "" {
			writeError(ctx, stdCtx, "Email and pin are required", perrors.NewErrInvalidRequest("Email and pin are required", errors.New("missing credentials")))
			return
		}

		if !allowAttempt(ctx, stdCtx, svc, req.Email) {
			return
		}

		u, err := svc.User.AuthenticateByPIN(stdCtx, req.Email, req.Pin)
		if err != nil {
			if errors.Is(err, user.ErrPinNotSet) {
				writeError(ctx, stdCtx, "PIN sign-in is not set up for this account", perrors.NewErrUnauthorized("PIN sign-in is not set up for this account", err))
				return
			}
			writeSignInError(ctx, stdCtx, err)
			return
		}

		issueSession(ctx, stdCtx, auth, u)
	})

	// Sign out clears the session cookie. Tokens are stateless, so this is
	// the only revocation there is.
	r.POST("/api/auth/sign-out", func(ctx *fasthttp.RequestCtx) {
		authenticator.ClearSessionCookie(ctx)
		writeOK(ctx, requestContext(ctx), "Signed out successfully", map[string]any{})
	})

	// Current session info.
	r.GET("/api/auth/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := sessionClaims(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		u, err := svc.User.GetByEmail(stdCtx, claims.Email)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to get user", perrors.NewErrInternalServerError("Failed to get user", err))
			return
		}

		writeOK(ctx, stdCtx, "success", u)
	})

	// Register a new portal user. Admin only.
	r.POST("/api/auth/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		var req user.RegisterRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.User.Register(stdCtx, &req)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrEmailAlreadyTaken):
				writeError(ctx, stdCtx, "User already registered", perrors.NewErrForbidden("User already registered", err))
			case errors.Is(err, user.ErrUnknownRole):
				writeError(ctx, stdCtx, "Unknown role", perrors.NewErrInvalidRequest("Unknown role", err))
			default:
				writeError(ctx, stdCtx, "Failed to register user", perrors.NewErrInvalidRequest("Failed to register user", err))
			}
			return
		}

		writeCreated(ctx, stdCtx, "Portal user created successfully", RegisterResponse{User: created})
	})

	// List portal users. Admin only.
	r.GET("/api/users", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		users, err := svc.User.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list users", perrors.NewErrInternalServerError("Failed to list users", err))
			return
		}

		writeOK(ctx, stdCtx, "Users retrieved successfully", users)
	})

	// Update a portal user's profile.
	r.PUT("/api/auth/update/{userId}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid user id", perrors.NewErrInvalidRequest("Invalid user id", err))
			return
		}

		var req user.UpdateRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.User.Update(stdCtx, id, &req)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				writeError(ctx, stdCtx, "Email is not registered", perrors.NewErrConflict("Email is not registered", err))
			case errors.Is(err, user.ErrUnknownRole):
				writeError(ctx, stdCtx, "Unknown role", perrors.NewErrInvalidRequest("Unknown role", err))
			default:
				writeError(ctx, stdCtx, "Failed to update user", perrors.NewErrInternalServerError("Failed to update user", err))
			}
			return
		}

		writeCreated(ctx, stdCtx, "User details updated successfully", updated)
	})

	// Delete a portal user. Admin only.
	r.DELETE("/api/auth/update/{userId}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid user id", perrors.NewErrInvalidRequest("Invalid user id", err))
			return
		}

		if err := svc.User.Delete(stdCtx, id); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				writeError(ctx, stdCtx, "User not found", perrors.NewErrConflict("User not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to delete user", perrors.NewErrInternalServerError("Failed to delete user", err))
			return
		}

		writeCreated(ctx, stdCtx, "User deleted successfully", map[string]any{})
	})
}

// allowAttempt consumes one rate-limit token for the identity; on exhaustion
// it writes the 429 and returns false. A limiter backend failure lets the
// attempt through rather than locking everyone out.
func allowAttempt(ctx *fasthttp.RequestCtx, stdCtx context.Context, svc *services.Services, email string) bool {
	ok, err := svc.SignInLimiter.Allow(stdCtx, email)
	if err != nil {
		slog.WarnContext(stdCtx, "rate limiter unavailable, allowing attempt", "error", err)
		return true
	}
	if !ok {
		writeError(ctx, stdCtx, "Too many sign-in attempts, try again later",
			perrors.New(perrors.ErrCodeTooManyRequests, "Too many sign-in attempts, try again later", errors.New("rate limited")))
		return false
	}
	return true
}

// writeSignInError maps credential failures: unknown email is a conflict,
// a wrong password or PIN is unauthorized.
func writeSignInError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		writeError(ctx, stdCtx, "User not found, please register", perrors.NewErrConflict("User not found, please register", err))
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(ctx, stdCtx, "Invalid credentials", perrors.NewErrUnauthorized("Invalid credentials", err))
	default:
		writeError(ctx, stdCtx, "Failed to sign in", perrors.NewErrInternalServerError("Failed to sign in", err))
	}
}

// issueSession sets the session cookie and answers with the role and its
// landing dashboard.
func issueSession(ctx *fasthttp.RequestCtx, stdCtx context.Context, auth *authenticator.Authenticator, u *user.User) {
	token, err := auth.GenerateToken(u.Email, u.Role)
	if err != nil {
		writeError(ctx, stdCtx, "Failed to generate token", perrors.NewErrInternalServerError("Failed to generate token", err))
		return
	}

	authenticator.SetSessionCookie(ctx, token)

	writeOK(ctx, stdCtx, "Signed in successfully", SignInResponse{
		UserRole: string(u.Role),
		Redirect: navigation.LandingPath(u.Role),
	})
}

// requireAdmin enforces the admin role on management endpoints.
func requireAdmin(ctx *fasthttp.RequestCtx, stdCtx context.Context, auth *authenticator.Authenticator) bool {
	claims, err := sessionClaims(ctx)
	if err != nil {
		writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
		return false
	}

	if err := auth.RequireRole(claims, user.RoleAdmin); err != nil {
		writeError(ctx, stdCtx, "Admin access required", perrors.NewErrForbidden("Admin access required", err))
		return false
	}
	return true
}
