package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	authmw "github.com/userwale/projetskillhub/pkg/middleware/auth"
	"github.com/userwale/projetskillhub/pkg/tokens"
	"github.com/userwale/projetskillhub/services/instructor/internal/upload"
)

type Deps struct {
	InstructorHandler *InstructorHTTP
	CourseHandler     *CourseHTTP
	JWTSecret         []byte
	UploadDir         string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/uploads", d.UploadDir)

	mw := authmw.New(d.JWTSecret)

	api := e.Group("/api/instructor")
	api.POST("/signup", d.InstructorHandler.Signup)
	api.POST("/login", d.InstructorHandler.Login)

	auth := api.Group("", mw.RequireAuth)
	auth.GET("/all", d.InstructorHandler.List, mw.RequireRole(tokens.RoleAdmin))
	auth.GET("/:id/profile", d.InstructorHandler.Profile)
	auth.PUT("/:id/profile", d.InstructorHandler.UpdateProfile)
	auth.DELETE("/:id", d.InstructorHandler.Delete, mw.RequireRole(tokens.RoleAdmin))

	auth.GET("/courses", d.CourseHandler.List)
	auth.GET("/courses/search", d.CourseHandler.Search)
	auth.POST("/courses", d.CourseHandler.Create, mw.RequireRole(tokens.RoleInstructor))
	auth.GET("/:id/courses", d.CourseHandler.ListByInstructor)
	auth.GET("/course/:id", d.CourseHandler.Get)
	auth.PUT("/course/:id", d.CourseHandler.Update, mw.RequireRole(tokens.RoleInstructor))
	auth.DELETE("/course/:id", d.CourseHandler.Delete, mw.RequireRole(tokens.RoleInstructor, tokens.RoleAdmin))
	auth.PUT("/course/:id/status", d.CourseHandler.UpdateStatus, mw.RequireRole(tokens.RoleAdmin))
	auth.POST("/course/:id/content", d.CourseHandler.AddContent,
		mw.RequireRole(tokens.RoleInstructor), echomw.BodyLimit(upload.MaxBodySize))
}
