package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/pkg/tokens"
)

type Deps struct {
	AdminHandler *AdminHTTP
	ProxyHandler *ProxyHTTP
	JWTSecret    []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	api := e.Group("/api/admin")
	api.POST("/verify-key", d.AdminHandler.VerifyKey)
	api.POST("/signup", d.AdminHandler.Signup) // gated by the capability token, not a session
	api.POST("/login", d.AdminHandler.Login)

	auth := api.Group("", mw.RequireAuth, mw.RequireRole(tokens.RoleAdmin))
	auth.GET("/profile", d.AdminHandler.Profile)
	auth.PUT("/profile", d.AdminHandler.UpdateProfile)
	auth.PUT("/change-password", d.AdminHandler.ChangePassword)

	auth.GET("/all-students", d.ProxyHandler.AllStudents)
	auth.POST("/learner", d.ProxyHandler.CreateLearner)
	auth.PUT("/learner/:learnerId", d.ProxyHandler.UpdateLearner)
	auth.DELETE("/learner/:learnerId", d.ProxyHandler.DeleteLearner)

	auth.GET("/instructors", d.ProxyHandler.AllInstructors)
	auth.POST("/instructor", d.ProxyHandler.CreateInstructor)
	auth.GET("/instructor/:instructorId", d.ProxyHandler.GetInstructor)
	auth.DELETE("/instructor/:instructorId", d.ProxyHandler.DeleteInstructor)

	auth.GET("/all-courses", d.ProxyHandler.AllCourses)
	auth.DELETE("/course/:courseId", d.ProxyHandler.DeleteCourse)
	auth.PUT("/course/:courseId/status", d.ProxyHandler.UpdateCourseStatus)
}
