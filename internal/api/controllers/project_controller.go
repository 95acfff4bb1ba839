package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/api/authenticator"
	"github.com/adilsaaly/trackport/internal/perrors"
	"github.com/adilsaaly/trackport/internal/services"
	"github.com/adilsaaly/trackport/internal/services/project"
)

type memberRequest struct {
	UserID string `json:"userId"`
}

func RegisterProjectRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Create project. Admin only.
	r.POST("/api/projects", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		var body project.CreateProjectRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if body.Name == "" {
			writeError(ctx, stdCtx, "Name is required", perrors.NewErrInvalidRequest("Name is required", errors.New("name is required")))
			return
		}

		created, err := svc.Project.Create(stdCtx, &body)
		if err != nil {
			switch {
			case errors.Is(err, project.ErrProjectAlreadyExists):
				writeError(ctx, stdCtx, "Project with this name already exists", perrors.NewErrConflict("Project with this name already exists", err))
			default:
				writeError(ctx, stdCtx, "Failed to create project", perrors.NewErrInternalServerError("Failed to create project", err))
			}
			return
		}

		writeCreated(ctx, stdCtx, "Project created successfully", created)
	})

	// List projects.
	r.GET("/api/projects", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		projects, err := svc.Project.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list projects", perrors.NewErrInternalServerError("Failed to list projects", err))
			return
		}

		writeOK(ctx, stdCtx, "Projects retrieved successfully", projects)
	})

	// Get one project.
	r.GET("/api/projects/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		p, err := svc.Project.GetByID(stdCtx, id)
		if err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				writeError(ctx, stdCtx, "Project not found", perrors.NewErrNotFound("Project not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to get project", perrors.NewErrInternalServerError("Failed to get project", err))
			return
		}

		writeOK(ctx, stdCtx, "Project retrieved successfully", p)
	})

	// Update project. Admin only.
	r.PUT("/api/projects/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body project.UpdateProjectRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Project.Update(stdCtx, id, &body)
		if err != nil {
			switch {
			case errors.Is(err, project.ErrProjectNotFound):
				writeError(ctx, stdCtx, "Project not found", perrors.NewErrNotFound("Project not found", err))
			case errors.Is(err, project.ErrProjectAlreadyExists):
				writeError(ctx, stdCtx, "Project with this name already exists", perrors.NewErrConflict("Project with this name already exists", err))
			default:
				writeError(ctx, stdCtx, "Failed to update project", perrors.NewErrInternalServerError("Failed to update project", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Project updated successfully", updated)
	})

	// Delete project. Admin only.
	r.DELETE("/api/projects/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if err := svc.Project.Delete(stdCtx, id); err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				writeError(ctx, stdCtx, "Project not found", perrors.NewErrNotFound("Project not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to delete project", perrors.NewErrInternalServerError("Failed to delete project", err))
			return
		}

		writeOK(ctx, stdCtx, "Project deleted successfully", map[string]any{})
	})

	// Project members.
	r.GET("/api/projects/{id}/members", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		members, err := svc.Project.Members(stdCtx, id)
		if err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				writeError(ctx, stdCtx, "Project not found", perrors.NewErrNotFound("Project not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to list members", perrors.NewErrInternalServerError("Failed to list members", err))
			return
		}

		writeOK(ctx, stdCtx, "Members retrieved successfully", members)
	})

	// Add a member. Admin only.
	r.POST("/api/projects/{id}/members", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body memberRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		userID, err := uuidFromString(body.UserID)
		if err != nil {
			writeError(ctx, stdCtx, "Invalid userId", perrors.NewErrInvalidRequest("Invalid userId", err))
			return
		}

		if err := svc.Project.AddMember(stdCtx, id, userID); err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				writeError(ctx, stdCtx, "Project not found", perrors.NewErrNotFound("Project not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to add member", perrors.NewErrInternalServerError("Failed to add member", err))
			return
		}

		writeOK(ctx, stdCtx, "Member added successfully", map[string]any{})
	})

	// Remove a member. Admin only.
	r.DELETE("/api/projects/{id}/members/{userId}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		userID, err := pathParamUUID(ctx, "userId")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid userId", perrors.NewErrInvalidRequest("Invalid userId", err))
			return
		}

		if err := svc.Project.RemoveMember(stdCtx, id, userID); err != nil {
			writeError(ctx, stdCtx, "Failed to remove member", perrors.NewErrInternalServerError("Failed to remove member", err))
			return
		}

		writeOK(ctx, stdCtx, "Member removed successfully", map[string]any{})
	})
}
