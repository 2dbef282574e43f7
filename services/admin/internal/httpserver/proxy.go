package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userwale/projetskillhub/pkg/gateway"
	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/logging"
	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
)

// ProxyHTTP serves the admin views over data owned by the instructor and
// learner services. Calls go out over HTTP with the caller's bearer token
// forwarded unchanged; downstream errors pass through status and message.
type ProxyHTTP struct {
	Instructor *gateway.Client
	Learner    *gateway.Client
}

func proxyError(c echo.Context, op string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", op)

	var se *gateway.StatusError
	if errors.As(err, &se) {
		l.Warn("upstream_error", "status", se.Status, "reason", se.Message)
		return echo.NewHTTPError(se.Status, se.Message)
	}
	l.Error("upstream_unreachable", "status", 502, "error", err)
	return echo.NewHTTPError(http.StatusBadGateway, "upstream service unavailable")
}

func authorization(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderAuthorization)
}

func (h *ProxyHTTP) AllStudents(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.Learner.Get(ctx, "/api/learner/all-learners", authorization(c))
	if err != nil {
		return proxyError(c, "admin.all_students", err)
	}
	return httpx.OK(c, http.StatusOK, "students fetched", json.RawMessage(data))
}

func (h *ProxyHTTP) UpdateLearner(c echo.Context) error {
	ctx := c.Request().Context()

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	data, err := h.Learner.Put(ctx, "/api/learner/"+c.Param("learnerId"), authorization(c), body)
	if err != nil {
		return proxyError(c, "admin.update_learner", err)
	}
	return httpx.OK(c, http.StatusOK, "learner updated successfully", json.RawMessage(data))
}

func (h *ProxyHTTP) DeleteLearner(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.Learner.Delete(ctx, "/api/learner/"+c.Param("learnerId"), authorization(c)); err != nil {
		return proxyError(c, "admin.delete_learner", err)
	}
	return httpx.OK(c, http.StatusOK, "learner deleted successfully", nil)
}

func (h *ProxyHTTP) CreateLearner(c echo.Context) error {
	ctx := c.Request().Context()

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	data, err := h.Learner.Post(ctx, "/api/learner/register", authorization(c), body)
	if err != nil {
		return proxyError(c, "admin.create_learner", err)
	}
	return httpx.OK(c, http.StatusCreated, "learner created successfully", json.RawMessage(data))
}

func (h *ProxyHTTP) AllInstructors(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.Instructor.Get(ctx, "/api/instructor/all", authorization(c))
	if err != nil {
		return proxyError(c, "admin.all_instructors", err)
	}
	return httpx.OK(c, http.StatusOK, "instructors fetched", json.RawMessage(data))
}

func (h *ProxyHTTP) CreateInstructor(c echo.Context) error {
	ctx := c.Request().Context()

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	data, err := h.Instructor.Post(ctx, "/api/instructor/signup", authorization(c), body)
	if err != nil {
		return proxyError(c, "admin.create_instructor", err)
	}
	return httpx.OK(c, http.StatusCreated, "instructor created successfully", json.RawMessage(data))
}

func (h *ProxyHTTP) GetInstructor(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("instructorId")

	data, err := h.Instructor.Get(ctx, "/api/instructor/"+id+"/profile", authorization(c))
	if err != nil {
		return proxyError(c, "admin.get_instructor", err)
	}
	return httpx.OK(c, http.StatusOK, "instructor fetched", json.RawMessage(data))
}

func (h *ProxyHTTP) DeleteInstructor(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("instructorId")

	p, _ := authmw.FromContext(c)
	if p.ID == id {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}

	if _, err := h.Instructor.Delete(ctx, "/api/instructor/"+id, authorization(c)); err != nil {
		return proxyError(c, "admin.delete_instructor", err)
	}
	return httpx.OK(c, http.StatusOK, "instructor deleted successfully", nil)
}

func (h *ProxyHTTP) AllCourses(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.Instructor.Get(ctx, "/api/instructor/courses", authorization(c))
	if err != nil {
		return proxyError(c, "admin.all_courses", err)
	}
	return httpx.OK(c, http.StatusOK, "courses fetched", json.RawMessage(data))
}

func (h *ProxyHTTP) DeleteCourse(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.Instructor.Delete(ctx, "/api/instructor/course/"+c.Param("courseId"), authorization(c)); err != nil {
		return proxyError(c, "admin.delete_course", err)
	}
	return httpx.OK(c, http.StatusOK, "course deleted successfully", nil)
}

func (h *ProxyHTTP) UpdateCourseStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	data, err := h.Instructor.Put(ctx, "/api/instructor/course/"+c.Param("courseId")+"/status", authorization(c), body)
	if err != nil {
		return proxyError(c, "admin.update_course_status", err)
	}
	return httpx.OK(c, http.StatusOK, "course status updated", json.RawMessage(data))
}
