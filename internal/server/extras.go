package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/logger"
)

type executeInput struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// handleExecute relays a code block's source to the execution sandbox and
// returns its combined output. Nothing runs in this process.
func (s *Server) handleExecute(c echo.Context) error {
	var in executeInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(in.Language) == "" || in.Code == "" {
		return httpError(fmt.Errorf("%w: language and code are required", domain.ErrValidation))
	}
	result, err := s.runner.Execute(c.Request().Context(), in.Language, in.Code)
	if err != nil {
		logger.Error("code execution", err, map[string]any{"language": in.Language})
		return echo.NewHTTPError(http.StatusBadGateway, "execution service unavailable")
	}
	return c.JSON(http.StatusOK, result)
}

type uploadInput struct {
	Data string `json:"data"` // base64 data URL
}

type uploadResponse struct {
	URL       string `json:"url,omitempty"`
	LocalData string `json:"localData,omitempty"`
}

// handleUploadImage forwards the image to the remote host. When the host is
// unconfigured or the upload fails, the inline data is echoed back so the
// block keeps a local copy instead of losing the image.
func (s *Server) handleUploadImage(c echo.Context) error {
	var in uploadInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if in.Data == "" {
		return httpError(fmt.Errorf("%w: image data is required", domain.ErrValidation))
	}
	if !s.images.Configured() {
		return c.JSON(http.StatusOK, uploadResponse{LocalData: in.Data})
	}
	url, err := s.images.Upload(c.Request().Context(), in.Data)
	if err != nil {
		logger.Error("image upload", err)
		return c.JSON(http.StatusOK, uploadResponse{LocalData: in.Data})
	}
	return c.JSON(http.StatusOK, uploadResponse{URL: url})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Token auth already ran; the socket carries no origin-sensitive state.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handlePageSocket subscribes the caller to a page's event stream. The
// connection is read only to detect close; all traffic is server to client.
func (s *Server) handlePageSocket(c echo.Context) error {
	p, err := s.pageForUser(c)
	if err != nil {
		return httpError(err)
	}
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	s.hub.Subscribe(p.ID, conn)
	defer s.hub.Unsubscribe(p.ID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
