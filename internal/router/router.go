package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/iliyamo/event-ticketing/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/event-ticketing/internal/middleware" // JWT authentication and role enforcement
	"github.com/iliyamo/event-ticketing/internal/model"      // role constants
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me and the revoke-all logout
// variant require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Customer registration and the organizer variant.  Both return a
	// token pair immediately so a freshly registered account can call
	// protected endpoints without a separate login.
	g.POST("/register", a.RegisterUser)
	g.POST("/organizer/register", a.RegisterOrganizer)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only mints a new
	// access token and leaves the refresh token untouched.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logging out a single session needs only the refresh token, no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleUser, model.RoleOrganizer))
	auth.GET("/me", a.Me)
	// With a bearer token and no refresh token in the body, Logout
	// revokes every session of the authenticated subject.
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints.  Guests
// can list events and inspect availability before creating an account.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/events", p.ListEvents)
	e.GET("/v1/events/:id", p.GetEvent)
}

// RegisterOrganizer registers event management and the stats dashboard
// behind JWT auth and the ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOrganizer))
	g.POST("/events", o.CreateEvent)
	g.PUT("/events/:id", o.UpdateEvent)
	g.DELETE("/events/:id", o.DeleteEvent)
	g.GET("/organizer/events", o.ListMyEvents)
	g.GET("/organizer/stats", o.Stats)
}

// RegisterCustomer registers the booking endpoints behind JWT auth and
// the USER role.
func RegisterCustomer(e *echo.Echo, ch *handler.CustomerHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleUser))
	g.POST("/bookings", ch.Book)
	g.GET("/my-bookings", ch.ListMyBookings)
	g.GET("/bookings/:id", ch.GetBooking)
	g.DELETE("/bookings/:id", ch.CancelBooking)
}
