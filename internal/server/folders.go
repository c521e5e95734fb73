package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/anuj452005/excalidraw/internal/domain"
)

type folderInput struct {
	Name string `json:"name"`
}

func (s *Server) handleListFolders(c echo.Context) error {
	folders, err := s.pages.ListFolders(userID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, folders)
}

func (s *Server) handleCreateFolder(c echo.Context) error {
	var in folderInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httpError(fmt.Errorf("%w: folder name is required", domain.ErrValidation))
	}
	f := &domain.Folder{
		ID:     uuid.New().String(),
		UserID: userID(c),
		Name:   name,
	}
	if err := s.pages.CreateFolder(f); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (s *Server) handleRenameFolder(c echo.Context) error {
	f, err := s.folderForUser(c)
	if err != nil {
		return httpError(err)
	}
	var in folderInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httpError(fmt.Errorf("%w: folder name is required", domain.ErrValidation))
	}
	f.Name = name
	if err := s.pages.UpdateFolder(f); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}

// handleDeleteFolder removes a folder. Pages inside move to the root; they
// are never deleted with their folder.
func (s *Server) handleDeleteFolder(c echo.Context) error {
	f, err := s.folderForUser(c)
	if err != nil {
		return httpError(err)
	}
	if err := s.pages.DeleteFolder(f.ID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) folderForUser(c echo.Context) (*domain.Folder, error) {
	f, err := s.pages.GetFolder(c.Param("id"))
	if err != nil {
		return nil, err
	}
	if f.UserID != userID(c) {
		return nil, domain.ErrAccessDenied
	}
	return f, nil
}
