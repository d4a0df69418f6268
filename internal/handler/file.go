package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/service"
)

// FileHandler serves the upload-presign endpoint backing category icons and
// user photos.
type FileHandler struct {
	Files *service.FileService
}

func NewFileHandler(files *service.FileService) *FileHandler { return &FileHandler{Files: files} }

// Presign handles POST /v1/files/presign: returns the created file row and
// a presigned PUT URL the client uploads the bytes to.
func (h *FileHandler) Presign(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Files.PresignUpload(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}
