package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/onamfest/house-registration/internal/handler"    // handlers that implement business logic
	"github.com/onamfest/house-registration/internal/middleware" // admin session middleware
	"github.com/onamfest/house-registration/internal/session"    // session guard consulted by the middleware
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the intake endpoints: the house status
// dashboard the form gates itself on, and the team submission itself.
// Neither requires authentication; registration is open to anyone with
// the link during the event window.
func RegisterPublic(e *echo.Echo, r *handler.RegistrationHandler) {
	// Last known per-house counts and completion flags
	e.GET("/v1/houses/status", r.HouseStatus)
	// Full 30-row team submission
	e.POST("/v1/registrations", r.SubmitTeam)
}

// RegisterAdmin registers the admin surface. Login is the only open
// endpoint; everything else sits behind the AdminAuth middleware, which
// verifies the bearer token and then asks the session guard whether the
// 24-hour session is still alive.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, guard *session.Guard) {
	e.POST("/v1/admin/login", a.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.AdminAuth(jwtSecret, guard))
	g.POST("/logout", a.Logout)
	g.GET("/registrations", a.ListRegistrations)
	g.GET("/export/pdf", a.ExportPDF)
	g.GET("/export/excel", a.ExportExcel)
}
