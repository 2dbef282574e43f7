package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/services/admin/internal/repo"
	"github.com/userwale/projetskillhub/services/admin/internal/service"
	"github.com/userwale/projetskillhub/services/admin/internal/transport"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) VerifyKey(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.verify_key")

	var req transport.VerifyKeyRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_key_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.VerifyKey(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("verify_key_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "activation key required")
		case errors.Is(err, service.ErrInvalidActivationKey):
			l.Warn("verify_key_error", "status", 403, "reason", "invalid activation key")
			return echo.NewHTTPError(http.StatusForbidden, "invalid activation key")
		default:
			l.Error("verify_key_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	l.Info("verify_key_success")
	return httpx.OK(c, http.StatusOK, "activation key validated", echo.Map{
		"token": token,
	})
}

func (h *AdminHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.signup")

	capability := authmw.BearerToken(c)
	if capability == "" {
		l.Warn("signup_error", "status", 401, "reason", "missing capability token")
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token required")
	}

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Signup(ctx, capability, req)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidToken):
			l.Warn("signup_error", "status", 403, "reason", "invalid capability token")
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
		case errors.Is(err, repo.ErrDuplicateEmail):
			l.Warn("signup_error", "status", 400, "reason", "email already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "admin already exists")
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("signup_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create admin")
		}
	}

	l.Info("signup_success", "admin_id", res.Admin.ID)
	return httpx.OK(c, http.StatusCreated, "admin created successfully", transport.LoginResponse{
		Token: res.Token,
		Admin: res.Admin,
	})
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

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
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	l.Info("login_success", "admin_id", res.Admin.ID)
	return httpx.OK(c, http.StatusOK, "login successful", transport.LoginResponse{
		Token: res.Token,
		Admin: res.Admin,
	})
}

func (h *AdminHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.profile")

	p, _ := authmw.FromContext(c)
	admin, err := h.Svc.Profile(ctx, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("profile_error", "status", 404, "reason", "admin not found")
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		}
		l.Error("profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch admin profile")
	}
	return httpx.OK(c, http.StatusOK, "profile fetched", admin)
}

func (h *AdminHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_profile")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	admin, err := h.Svc.UpdateProfile(ctx, p.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("update_profile_error", "status", 404, "reason", "admin not found")
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		case errors.Is(err, repo.ErrDuplicateEmail):
			l.Warn("update_profile_error", "status", 400, "reason", "email already exists")
			return echo.NewHTTPError(http.StatusBadRequest, "email already exists")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_profile_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("update_profile_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
		}
	}

	l.Info("update_profile_success", "admin_id", admin.ID)
	return httpx.OK(c, http.StatusOK, "profile updated successfully", admin)
}

func (h *AdminHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.change_password")

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	if err := h.Svc.ChangePassword(ctx, p.ID, req); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("change_password_error", "status", 404, "reason", "admin not found")
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		case errors.Is(err, service.ErrWrongPassword):
			l.Warn("change_password_error", "status", 400, "reason", "current password mismatch")
			return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect")
		case errors.Is(err, service.ErrValidation):
			l.Warn("change_password_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("change_password_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot change password")
		}
	}

	l.Info("change_password_success", "admin_id", p.ID)
	return httpx.OK(c, http.StatusOK, "password changed successfully", nil)
}
