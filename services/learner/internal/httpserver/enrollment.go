package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/services/learner/internal/repo"
	"github.com/userwale/projetskillhub/services/learner/internal/service"
	"github.com/userwale/projetskillhub/services/learner/internal/transport"
)

type EnrollmentHTTP struct {
	Svc *service.EnrollmentService
}

func (h *EnrollmentHTTP) Enroll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enrollment.enroll")

	var req transport.EnrollRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("enroll_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	enrollment, err := h.Svc.Enroll(ctx, p.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrAlreadyEnrolled):
			l.Warn("enroll_error", "status", 409, "reason", "already enrolled")
			return echo.NewHTTPError(http.StatusConflict, "already enrolled in this course")
		case errors.Is(err, service.ErrValidation):
			l.Warn("enroll_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("enroll_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot enroll")
		}
	}

	l.Info("enroll_success", "course_id", req.CourseID)
	return httpx.OK(c, http.StatusCreated, "course enrolled successfully", enrollment)
}

func (h *EnrollmentHTTP) Unenroll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enrollment.unenroll")

	var req transport.EnrollRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("unenroll_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	if err := h.Svc.Unenroll(ctx, p.ID, req); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("unenroll_error", "status", 404, "reason", "enrollment not found")
			return echo.NewHTTPError(http.StatusNotFound, "enrollment not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("unenroll_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("unenroll_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot unenroll")
		}
	}

	l.Info("unenroll_success", "course_id", req.CourseID)
	return httpx.OK(c, http.StatusOK, "unenrolled successfully", nil)
}

func (h *EnrollmentHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enrollment.list")

	p, _ := authmw.FromContext(c)
	items, err := h.Svc.ListByLearner(ctx, p.ID)
	if err != nil {
		l.Error("enrollment_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch enrollments")
	}
	return httpx.OK(c, http.StatusOK, "enrollments fetched", items)
}

func (h *EnrollmentHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enrollment.get")

	p, _ := authmw.FromContext(c)
	enrollment, err := h.Svc.Get(ctx, p.ID, c.Param("courseId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("enrollment_get_error", "status", 404, "reason", "enrollment not found")
			return echo.NewHTTPError(http.StatusNotFound, "enrollment not found")
		}
		l.Error("enrollment_get_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch enrollment")
	}

	return httpx.OK(c, http.StatusOK, "enrollment fetched", echo.Map{
		"enrollment":    enrollment,
		"progressCount": len(enrollment.Progress),
	})
}

func (h *EnrollmentHTTP) UpdateProgress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "enrollment.update_progress")

	var req transport.ProgressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("progress_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	enrollment, err := h.Svc.UpdateProgress(ctx, p.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("progress_error", "status", 404, "reason", "enrollment not found")
			return echo.NewHTTPError(http.StatusNotFound, "enrollment not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("progress_error", "status", 400, "reason", "validation failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("progress_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update progress")
		}
	}

	l.Info("progress_success", "course_id", req.CourseID, "content_id", req.ContentID)
	return httpx.OK(c, http.StatusOK, "progress updated successfully", enrollment)
}
