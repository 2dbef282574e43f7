package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/gateway"
	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/services/learner/internal/repo"
	"github.com/userwale/projetskillhub/services/learner/internal/service"
	"github.com/userwale/projetskillhub/services/learner/internal/transport"
)

type LearnerHTTP struct {
	Svc              *service.LearnerService
	InstructorClient *gateway.Client
}

func (h *LearnerHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	learner, err := h.Svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			l.Warn("register_error", "status", 400, "reason", "email already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "email already exists")
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("register_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create learner")
		}
	}

	l.Info("register_success", "learner_id", learner.ID)
	return httpx.OK(c, http.StatusCreated, "learner created successfully", echo.Map{
		"id": learner.ID,
	})
}

func (h *LearnerHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	l.Info("login_success", "learner_id", res.Learner.ID)
	return httpx.OK(c, http.StatusOK, "login successful", transport.LoginResponse{
		Token:     res.Token,
		LearnerID: res.Learner.ID,
	})
}

func (h *LearnerHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.profile")

	p, _ := authmw.FromContext(c)
	learner, err := h.Svc.Profile(ctx, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("profile_error", "status", 404, "reason", "learner not found")
			return echo.NewHTTPError(http.StatusNotFound, "learner not found")
		}
		l.Error("profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch profile")
	}
	return httpx.OK(c, http.StatusOK, "profile fetched", learner)
}

func (h *LearnerHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.update_profile")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	learner, err := h.Svc.UpdateProfile(ctx, p.ID, req)
	if err != nil {
		return mapLearnerUpdateError(c, err, "learner.update_profile")
	}

	l.Info("update_profile_success", "learner_id", learner.ID)
	return httpx.OK(c, http.StatusOK, "learner profile updated successfully", learner)
}

func (h *LearnerHTTP) AdminUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.admin_update")

	var req transport.AdminUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	learner, err := h.Svc.AdminUpdate(ctx, c.Param("id"), req)
	if err != nil {
		return mapLearnerUpdateError(c, err, "learner.admin_update")
	}

	l.Info("admin_update_success", "learner_id", learner.ID)
	return httpx.OK(c, http.StatusOK, "learner updated successfully", learner)
}

func mapLearnerUpdateError(c echo.Context, err error, op string) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn(op+"_error", "status", 404, "reason", "learner not found")
		return echo.NewHTTPError(http.StatusNotFound, "learner not found")
	case errors.Is(err, repo.ErrDuplicateEmail):
		l.Warn(op+"_error", "status", 400, "reason", "email already in use")
		return echo.NewHTTPError(http.StatusBadRequest, "email is already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(op+"_error", "status", 400, "reason", "current password incorrect")
		return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect")
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(op+"_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *LearnerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch learners")
	}
	return httpx.OK(c, http.StatusOK, "learners fetched", items)
}

func (h *LearnerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_error", "status", 404, "reason", "learner not found")
			return echo.NewHTTPError(http.StatusNotFound, "learner not found")
		}
		l.Error("delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete learner")
	}

	l.Info("delete_success", "learner_id", c.Param("id"))
	return httpx.OK(c, http.StatusOK, "learner deleted successfully", nil)
}

// AllCourses aggregates the instructor service's course list, forwarding the
// caller's bearer token and passing downstream failures through unchanged.
func (h *LearnerHTTP) AllCourses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "learner.all_courses")

	data, err := h.InstructorClient.Get(ctx, "/api/instructor/courses", c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		var se *gateway.StatusError
		if errors.As(err, &se) {
			l.Warn("all_courses_upstream_error", "status", se.Status, "reason", se.Message)
			return echo.NewHTTPError(se.Status, se.Message)
		}
		l.Error("all_courses_error", "status", 502, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "instructor service unavailable")
	}

	return httpx.OK(c, http.StatusOK, "courses fetched", data)
}
