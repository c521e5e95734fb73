package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/export"
	"github.com/anuj452005/excalidraw/internal/live"
	"github.com/anuj452005/excalidraw/internal/logger"
)

type pageInput struct {
	Title    string `json:"title"`
	FolderID string `json:"folderId"`
}

func (s *Server) handleListPages(c echo.Context) error {
	pages, err := s.pages.ListPages(userID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pages)
}

func (s *Server) handleCreatePage(c echo.Context) error {
	var in pageInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Untitled"
	}
	p := &domain.Page{
		ID:       uuid.New().String(),
		UserID:   userID(c),
		FolderID: in.FolderID,
		Title:    title,
	}
	if err := s.pages.CreatePage(p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleGetPage(c echo.Context) error {
	p, err := s.pageForUser(c)
	if err != nil {
		return httpError(err)
	}
	blocks, err := s.blocks.ListBlocks(p.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, domain.PageState{Page: *p, Blocks: blocks})
}

func (s *Server) handleUpdatePage(c echo.Context) error {
	p, err := s.pageForUser(c)
	if err != nil {
		return httpError(err)
	}
	var in pageInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		p.Title = title
	}
	if in.FolderID != "" {
		p.FolderID = in.FolderID
	}
	if err := s.pages.UpdatePage(p); err != nil {
		return httpError(err)
	}
	s.hub.Broadcast(live.Event{Event: "page:renamed", PageID: p.ID, Payload: p})
	return c.JSON(http.StatusOK, p)
}

// handleDeletePage removes the page and its blocks. Block deletion failure is
// logged but not fatal; the nightly sweep catches orphans.
func (s *Server) handleDeletePage(c echo.Context) error {
	p, err := s.pageForUser(c)
	if err != nil {
		return httpError(err)
	}
	if err := s.pages.DeletePage(p.ID); err != nil {
		return httpError(err)
	}
	if err := s.blocks.DeleteBlocksByPage(p.ID); err != nil {
		logger.Error("delete page blocks", err, map[string]any{"pageId": p.ID})
	}
	s.hub.Broadcast(live.Event{Event: "page:deleted", PageID: p.ID})
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleExportPDF(c echo.Context) error {
	p, err := s.pageForUser(c)
	if err != nil {
		return httpError(err)
	}
	blocks, err := s.blocks.ListBlocks(p.ID)
	if err != nil {
		return httpError(err)
	}
	pdf, err := export.PageToPDF(&domain.PageState{Page: *p, Blocks: blocks})
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", p.Title+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// pageForUser loads the :id page and enforces ownership.
func (s *Server) pageForUser(c echo.Context) (*domain.Page, error) {
	p, err := s.pages.GetPage(c.Param("id"))
	if err != nil {
		return nil, err
	}
	if p.UserID != userID(c) {
		return nil, domain.ErrAccessDenied
	}
	return p, nil
}
