package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/services/instructor/internal/repo"
	"github.com/userwale/projetskillhub/services/instructor/internal/service"
	"github.com/userwale/projetskillhub/services/instructor/internal/transport"
)

type InstructorHTTP struct {
	Svc *service.InstructorService
}

func (h *InstructorHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instructor.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Signup(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			l.Warn("signup_error", "status", 400, "reason", "email already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "email already exists")
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("signup_error", "status", 500, "reason", "cannot create instructor", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create instructor")
		}
	}

	l.Info("signup_success", "instructor_id", res.Instructor.ID)
	return httpx.OK(c, http.StatusCreated, "instructor created successfully", echo.Map{
		"token": res.Token,
		"id":    res.Instructor.ID,
	})
}

func (h *InstructorHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instructor.login")

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

	l.Info("login_success", "instructor_id", res.Instructor.ID)
	return httpx.OK(c, http.StatusOK, "login successful", transport.LoginResponse{
		Token: res.Token,
		ID:    res.Instructor.ID,
	})
}

func (h *InstructorHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instructor.profile")

	inst, err := h.Svc.Profile(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("profile_error", "status", 404, "reason", "instructor not found")
			return echo.NewHTTPError(http.StatusNotFound, "instructor not found")
		}
		l.Error("profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch profile")
	}

	return httpx.OK(c, http.StatusOK, "profile fetched", inst)
}

func (h *InstructorHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instructor.update_profile")

	p, _ := authmw.FromContext(c)
	id := c.Param("id")
	if p.ID != id {
		l.Warn("update_profile_error", "status", 403, "reason", "not the profile owner")
		return echo.NewHTTPError(http.StatusForbidden, "cannot update another instructor's profile")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	inst, err := h.Svc.UpdateProfile(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("update_profile_error", "status", 404, "reason", "instructor not found")
			return echo.NewHTTPError(http.StatusNotFound, "instructor not found")
		case errors.Is(err, repo.ErrDuplicateEmail):
			l.Warn("update_profile_error", "status", 400, "reason", "email already in use")
			return echo.NewHTTPError(http.StatusBadRequest, "email is already in use")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("update_profile_error", "status", 400, "reason", "current password incorrect")
			return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_profile_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("update_profile_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
		}
	}

	l.Info("update_profile_success", "instructor_id", id)
	return httpx.OK(c, http.StatusOK, "profile updated successfully", inst)
}

func (h *InstructorHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instructor.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch instructors")
	}
	return httpx.OK(c, http.StatusOK, "instructors fetched", items)
}

func (h *InstructorHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "instructor.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_error", "status", 404, "reason", "instructor not found")
			return echo.NewHTTPError(http.StatusNotFound, "instructor not found")
		}
		l.Error("delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete instructor")
	}

	l.Info("delete_success", "instructor_id", c.Param("id"))
	return httpx.OK(c, http.StatusOK, "instructor deleted successfully", nil)
}
