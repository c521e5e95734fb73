package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/imagehost"
	"github.com/anuj452005/excalidraw/internal/live"
	"github.com/anuj452005/excalidraw/internal/logger"
	"github.com/anuj452005/excalidraw/internal/runner"
)

// Server is the HTTP API: CRUD over users/folders/pages/blocks with
// ownership checks, plus thin relays for code execution and image upload,
// PDF export, and a websocket fanout of page events.
type Server struct {
	echo   *echo.Echo
	users  domain.UserStore
	pages  domain.PageStore
	blocks domain.BlockStore
	runner *runner.Client
	images *imagehost.Client
	hub    *live.Hub
	secret []byte
}

// New wires the routes. secret signs auth tokens.
func New(users domain.UserStore, pages domain.PageStore, blocks domain.BlockStore,
	run *runner.Client, images *imagehost.Client, secret string) *Server {

	s := &Server{
		users:  users,
		pages:  pages,
		blocks: blocks,
		runner: run,
		images: images,
		hub:    live.NewHub(),
		secret: []byte(secret),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.POST("/api/auth/register", s.handleRegister)
	e.POST("/api/auth/login", s.handleLogin)

	api := e.Group("/api", s.requireAuth)
	api.GET("/folders", s.handleListFolders)
	api.POST("/folders", s.handleCreateFolder)
	api.PUT("/folders/:id", s.handleRenameFolder)
	api.DELETE("/folders/:id", s.handleDeleteFolder)

	api.GET("/pages", s.handleListPages)
	api.POST("/pages", s.handleCreatePage)
	api.GET("/pages/:id", s.handleGetPage)
	api.PUT("/pages/:id", s.handleUpdatePage)
	api.DELETE("/pages/:id", s.handleDeletePage)
	api.GET("/pages/:id/export.pdf", s.handleExportPDF)

	api.POST("/blocks", s.handleCreateBlock)
	api.PUT("/blocks/:id", s.handleUpdateBlock)
	api.DELETE("/blocks/:id", s.handleDeleteBlock)

	api.POST("/execute", s.handleExecute)
	api.POST("/images", s.handleUploadImage)

	e.GET("/ws/pages/:id", s.handlePageSocket, s.requireAuth)

	s.echo = e
	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Hub exposes the live-event fanout.
func (s *Server) Hub() *live.Hub { return s.hub }

// httpError maps domain errors onto status codes. Anything unrecognized is
// logged and reported as a bare 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
