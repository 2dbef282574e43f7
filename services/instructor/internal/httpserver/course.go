package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/services/instructor/internal/service"
	"github.com/userwale/projetskillhub/services/instructor/internal/transport"
)

type CourseHTTP struct {
	Svc *service.CourseService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}

func mapCourseError(c echo.Context, err error, op string) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn(op+"_error", "status", 404, "reason", "course not found")
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrNotOwner):
		l.Warn(op+"_error", "status", 403, "reason", "not the course owner")
		return echo.NewHTTPError(http.StatusForbidden, "you are not the owner of this course")
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFileNotAllowed):
		l.Warn(op+"_error", "status", 400, "reason", "file type not allowed")
		return echo.NewHTTPError(http.StatusBadRequest, "file type not allowed")
	default:
		l.Error(op+"_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *CourseHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.create")

	var req transport.CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	course, err := h.Svc.Create(ctx, p.ID, req)
	if err != nil {
		return mapCourseError(c, err, "course.create")
	}

	l.Info("course_create_success", "course_id", course.ID)
	return httpx.OK(c, http.StatusCreated, "course created successfully", course)
}

func (h *CourseHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	course, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return mapCourseError(c, err, "course.get")
	}
	return httpx.OK(c, http.StatusOK, "course fetched", course)
}

func (h *CourseHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("course_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch courses")
	}
	return httpx.OK(c, http.StatusOK, "courses fetched", items)
}

func (h *CourseHTTP) ListByInstructor(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.list_by_instructor")

	items, err := h.Svc.ListByInstructor(ctx, c.Param("id"))
	if err != nil {
		l.Error("course_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch courses")
	}
	return httpx.OK(c, http.StatusOK, "courses fetched", items)
}

func (h *CourseHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("course_search_error", "status", 400, "reason", "missing query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	from := parseIntDefault(c.QueryParam("from"), 0)
	size := parseIntDefault(c.QueryParam("size"), 20)
	if size > 100 {
		size = 100
	}

	total, items, err := h.Svc.Search(ctx, q, from, size)
	if err != nil {
		l.Error("course_search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return httpx.OK(c, http.StatusOK, "search completed", echo.Map{
		"total": total,
		"items": items,
	})
}

func (h *CourseHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.update")

	var req transport.UpdateCourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, _ := authmw.FromContext(c)
	course, err := h.Svc.Update(ctx, c.Param("id"), p.ID, p.Role, req)
	if err != nil {
		return mapCourseError(c, err, "course.update")
	}

	l.Info("course_update_success", "course_id", course.ID)
	return httpx.OK(c, http.StatusOK, "course updated successfully", course)
}

func (h *CourseHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.update_status")

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("course_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	course, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req)
	if err != nil {
		return mapCourseError(c, err, "course.update_status")
	}

	l.Info("course_status_success", "course_id", course.ID, "course_status", course.Status)
	return httpx.OK(c, http.StatusOK, "course status updated", course)
}

func (h *CourseHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.delete")

	p, _ := authmw.FromContext(c)
	if err := h.Svc.Delete(ctx, c.Param("id"), p.ID, p.Role); err != nil {
		return mapCourseError(c, err, "course.delete")
	}

	l.Info("course_delete_success", "course_id", c.Param("id"))
	return httpx.OK(c, http.StatusOK, "course deleted successfully", nil)
}

func (h *CourseHTTP) AddContent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.add_content")

	file, err := c.FormFile("file")
	if err != nil {
		l.Warn("add_content_error", "status", 400, "reason", "file is required", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	title := c.FormValue("title")

	p, _ := authmw.FromContext(c)
	course, err := h.Svc.AddContent(ctx, c.Param("id"), p.ID, p.Role, title, file)
	if err != nil {
		return mapCourseError(c, err, "course.add_content")
	}

	l.Info("add_content_success", "course_id", course.ID, "items", len(course.Content))
	return httpx.OK(c, http.StatusCreated, "content added successfully", course)
}
