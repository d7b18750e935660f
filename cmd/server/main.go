package main // Entry point package

import (
	stdlog "log" // stdlib log for pre-server fatals

	"github.com/labstack/echo/v4"                    // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"  // Echo's built-in middleware
	"github.com/labstack/gommon/log"                 // leveled logger behind e.Logger

	"github.com/avdeev/bandboard/internal/config"     // env config loader
	"github.com/avdeev/bandboard/internal/database"   // MySQL pool + schema bootstrap
	"github.com/avdeev/bandboard/internal/handler"    // page handlers
	"github.com/avdeev/bandboard/internal/middleware" // request clock snapshot
	"github.com/avdeev/bandboard/internal/repository" // data access layer
	"github.com/avdeev/bandboard/internal/router"     // route registration
	"github.com/avdeev/bandboard/internal/view"       // template renderer + flash store
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		stdlog.Fatalf("open database: %v", err)
	}
	if err := database.CreateSchema(db); err != nil {
		stdlog.Fatalf("create schema: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Renderer = view.NewRenderer()
	e.HTTPErrorHandler = handler.ErrorPages
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(middleware.RequestClock())

	flash := view.NewFlash(cfg.SessionSecret)
	pages := handler.Pages{Flash: flash}
	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	router.RegisterRoutes(e,
		&handler.HomeHandler{Pages: pages},
		&handler.VenueHandler{Pages: pages, Venues: venueRepo, Shows: showRepo},
		&handler.ArtistHandler{Pages: pages, Artists: artistRepo, Shows: showRepo},
		&handler.ShowHandler{Pages: pages, Shows: showRepo},
	)

	addr := ":" + cfg.Port
	e.Logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil { // Start HTTP server
		e.Logger.Fatal(err)
	}
}
