package router // package router defines how HTTP routes are registered for the app

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/avdeev/bandboard/internal/handler" // import the handlers that implement the pages
)

// RegisterRoutes maps every HTTP route of the directory onto its handler.
// All pages are public; there is no authenticated surface. Mutations are
// plain form POSTs, including the overloaded delete POST on the canonical
// /venues/:id and /artists/:id paths.
func RegisterRoutes(e *echo.Echo, home *handler.HomeHandler, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler) {
	// Landing page and health check for load balancers / monitoring.
	e.GET("/", home.Index)
	e.GET("/healthz", handler.Health)

	// Venue pages. The static /venues/create routes must be registered
	// alongside the parameterized /venues/:id routes; Echo resolves the
	// static match first.
	e.GET("/venues", v.List)
	e.POST("/venues/search", v.Search)
	e.GET("/venues/create", v.CreateForm)
	e.POST("/venues/create", v.Create)
	e.GET("/venues/:id", v.Detail)
	e.POST("/venues/:id", v.Delete)
	e.GET("/venues/:id/edit", v.EditForm)
	e.POST("/venues/:id/edit", v.Edit)

	// Artist pages mirror the venue surface.
	e.GET("/artists", a.List)
	e.POST("/artists/search", a.Search)
	e.GET("/artists/create", a.CreateForm)
	e.POST("/artists/create", a.Create)
	e.GET("/artists/:id", a.Detail)
	e.POST("/artists/:id", a.Delete)
	e.GET("/artists/:id/edit", a.EditForm)
	e.POST("/artists/:id/edit", a.Edit)

	// Show pages: global listing plus the creation form.
	e.GET("/shows", s.List)
	e.GET("/shows/create", s.CreateForm)
	e.POST("/shows/create", s.Create)
}
