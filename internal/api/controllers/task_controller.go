package controllers

import (
	"context"
	"errors"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/api/authenticator"
	"github.com/adilsaaly/trackport/internal/perrors"
	"github.com/adilsaaly/trackport/internal/services"
	"github.com/adilsaaly/trackport/internal/services/task"
	"github.com/adilsaaly/trackport/internal/services/user"
)

type assignmentStatusRequest struct {
	Status string `json:"status"`
}

type eligibleUsersRequest struct {
	ProjectIDs []uuid.UUID `json:"projectIds"`
}

func RegisterTaskRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Create task. Admins manage tasks; engineers may self-assign.
	r.POST("/api/tasks", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireTaskWriter(ctx, stdCtx, auth) {
			return
		}

		var body task.SaveTaskRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Task.Create(stdCtx, &body)
		if err != nil {
			writeTaskSaveError(ctx, stdCtx, "Failed to create task", err)
			return
		}

		writeCreated(ctx, stdCtx, "Task created successfully", created)
	})

	// List all tasks.
	r.GET("/api/tasks", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		tasks, err := svc.Task.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list tasks", perrors.NewErrInternalServerError("Failed to list tasks", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully", tasks)
	})

	// Tasks assigned to the signed-in user.
	r.GET("/api/tasks/mine", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := sessionClaims(ctx)
		if err != nil {
			writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		u, err := svc.User.GetByEmail(stdCtx, claims.Email)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to resolve user", perrors.NewErrInternalServerError("Failed to resolve user", err))
			return
		}

		tasks, err := svc.Task.ListForUser(stdCtx, u.ID)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list tasks", perrors.NewErrInternalServerError("Failed to list tasks", err))
			return
		}

		writeOK(ctx, stdCtx, "Tasks retrieved successfully", tasks)
	})

	// Eligible assignees for a project selection: the union of the selected
	// projects' members.
	r.POST("/api/tasks/eligible-users", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var body eligibleUsersRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		users, err := svc.Task.EligibleUsers(stdCtx, body.ProjectIDs)
		if err != nil {
			if errors.Is(err, task.ErrNoProjects) {
				writeError(ctx, stdCtx, "At least one project is required", perrors.NewErrInvalidRequest("At least one project is required", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to list eligible users", perrors.NewErrInternalServerError("Failed to list eligible users", err))
			return
		}

		writeOK(ctx, stdCtx, "Eligible users retrieved successfully", users)
	})

	// Task with its assignments.
	r.GET("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		detail, err := svc.Task.GetByID(stdCtx, id)
		if err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				writeError(ctx, stdCtx, "Task not found", perrors.NewErrNotFound("Task not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to get task", perrors.NewErrInternalServerError("Failed to get task", err))
			return
		}

		writeOK(ctx, stdCtx, "Task retrieved successfully", detail)
	})

	// Update task, replacing its assignment set. Last writer wins.
	r.PUT("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireTaskWriter(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body task.SaveTaskRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Task.Update(stdCtx, id, &body)
		if err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				writeError(ctx, stdCtx, "Task not found", perrors.NewErrNotFound("Task not found", err))
				return
			}
			writeTaskSaveError(ctx, stdCtx, "Failed to update task", err)
			return
		}

		writeOK(ctx, stdCtx, "Task updated successfully", updated)
	})

	// Delete task. Admin only.
	r.DELETE("/api/tasks/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if !requireAdmin(ctx, stdCtx, auth) {
			return
		}

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		if err := svc.Task.Delete(stdCtx, id); err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				writeError(ctx, stdCtx, "Task not found", perrors.NewErrNotFound("Task not found", err))
				return
			}
			writeError(ctx, stdCtx, "Failed to delete task", perrors.NewErrInternalServerError("Failed to delete task", err))
			return
		}

		writeOK(ctx, stdCtx, "Task deleted successfully", map[string]any{})
	})

	// Move one assignment between Pending, Ongoing and Complete.
	r.PATCH("/api/assignments/{id}/status", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		id, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid ID format", perrors.NewErrInvalidRequest("Invalid ID format", err))
			return
		}

		var body assignmentStatusRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if err := svc.Task.SetAssignmentStatus(stdCtx, id, task.Status(body.Status)); err != nil {
			switch {
			case errors.Is(err, task.ErrInvalidStatus):
				writeError(ctx, stdCtx, "Invalid status", perrors.NewErrInvalidRequest("Invalid status", err))
			case errors.Is(err, task.ErrAssignmentNotFound):
				writeError(ctx, stdCtx, "Assignment not found", perrors.NewErrNotFound("Assignment not found", err))
			default:
				writeError(ctx, stdCtx, "Failed to update assignment", perrors.NewErrInternalServerError("Failed to update assignment", err))
			}
			return
		}

		writeOK(ctx, stdCtx, "Assignment status updated successfully", map[string]any{})
	})
}

// writeTaskSaveError maps save-payload validation failures to 400s and
// everything else to a 500.
func writeTaskSaveError(ctx *fasthttp.RequestCtx, stdCtx context.Context, msg string, err error) {
	switch {
	case errors.Is(err, task.ErrMissingTitle),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrNoProjects),
		errors.Is(err, task.ErrNoAssignees),
		errors.Is(err, task.ErrDuplicateAssignee),
		errors.Is(err, task.ErrSequenceNotContiguous):
		writeError(ctx, stdCtx, err.Error(), perrors.NewErrInvalidRequest(err.Error(), err))
	default:
		writeError(ctx, stdCtx, msg, perrors.NewErrInternalServerError(msg, err))
	}
}

// requireTaskWriter allows admins and software engineers to create or edit
// tasks.
func requireTaskWriter(ctx *fasthttp.RequestCtx, stdCtx context.Context, auth *authenticator.Authenticator) bool {
	claims, err := sessionClaims(ctx)
	if err != nil {
		writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", err))
		return false
	}

	if err := auth.RequireRole(claims, user.RoleAdmin, user.RoleSoftwareEngineer); err != nil {
		writeError(ctx, stdCtx, "Insufficient permissions", perrors.NewErrForbidden("Insufficient permissions", err))
		return false
	}
	return true
}
