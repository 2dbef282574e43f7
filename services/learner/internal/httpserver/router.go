package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/pkg/tokens"
)

type Deps struct {
	LearnerHandler    *LearnerHTTP
	EnrollmentHandler *EnrollmentHTTP
	JWTSecret         []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	api := e.Group("/api/learner")
	api.POST("/register", d.LearnerHandler.Register)
	api.POST("/login", d.LearnerHandler.Login)

	auth := api.Group("", mw.RequireAuth)
	auth.GET("/profile", d.LearnerHandler.Profile)
	auth.PUT("/profile", d.LearnerHandler.UpdateProfile)
	auth.GET("/all-learners", d.LearnerHandler.List, mw.RequireRole(tokens.RoleAdmin))
	auth.PUT("/:id", d.LearnerHandler.AdminUpdate, mw.RequireRole(tokens.RoleAdmin))
	auth.DELETE("/:id", d.LearnerHandler.Delete, mw.RequireRole(tokens.RoleAdmin))

	auth.GET("/all-courses", d.LearnerHandler.AllCourses)

	learner := auth.Group("", mw.RequireRole(tokens.RoleLearner))
	learner.POST("/enroll", d.EnrollmentHandler.Enroll)
	learner.DELETE("/unenroll", d.EnrollmentHandler.Unenroll)
	learner.GET("/enrollments", d.EnrollmentHandler.List)
	learner.GET("/enrollment/:courseId", d.EnrollmentHandler.Get)
	learner.PUT("/progress", d.EnrollmentHandler.UpdateProgress)
}
