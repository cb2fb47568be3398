package handlers

import (
	"log/slog"
	"net/http"

	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/labstack/echo/v4"
)

type uploadRequest struct {
	Image string `json:"image"`
}

type moveRequest struct {
	DestinationFolder string `json:"destinationFolder"`
}

type ImagesHandler struct {
	gallery *gallery.Service
	logger  *slog.Logger
}

func NewImagesHandler(svc *gallery.Service, logger *slog.Logger) *ImagesHandler {
	return &ImagesHandler{gallery: svc, logger: logger}
}

// UploadImage stores a base64 image in the folder and responds with its key
func (h *ImagesHandler) UploadImage(c echo.Context) error {
	folderName := c.Param("folderName")
	if folderName == "" {
		return ClientError(c, h.logger, "folder path parameter is missing.")
	}

	var req uploadRequest
	if err := decodeBody(c, &req); err != nil {
		return ClientError(c, h.logger, err.Error())
	}
	if req.Image == "" {
		return ClientError(c, h.logger, `You should specify "image" property.`)
	}

	key, err := h.gallery.Upload(c.Request().Context(), folderName, req.Image)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	h.logger.DebugContext(c.Request().Context(), "image uploaded", "key", key)
	return c.String(http.StatusOK, key)
}

// DeleteImage permanently removes an image
func (h *ImagesHandler) DeleteImage(c echo.Context) error {
	folderName := c.Param("folderName")
	if folderName == "" {
		return ClientError(c, h.logger, "folder path parameter is missing.")
	}
	imageID := c.Param("imageId")
	if imageID == "" {
		return ClientError(c, h.logger, "image parameter is missing.")
	}

	if err := h.gallery.Delete(c.Request().Context(), folderName, imageID); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MoveImage copies an image into the destination folder and then deletes the
// original. The two steps are not atomic.
func (h *ImagesHandler) MoveImage(c echo.Context) error {
	folderName := c.Param("folderName")
	if folderName == "" {
		return ClientError(c, h.logger, "folder path parameter is missing.")
	}
	imageID := c.Param("imageId")
	if imageID == "" {
		return ClientError(c, h.logger, "image parameter is missing.")
	}

	var req moveRequest
	if err := decodeBody(c, &req); err != nil {
		return ClientError(c, h.logger, err.Error())
	}
	if req.DestinationFolder == "" {
		return ClientError(c, h.logger, `You should specify "destinationFolder" property.`)
	}

	plan, err := h.gallery.PlanMove(folderName, imageID, req.DestinationFolder)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	if err := h.gallery.Move(c.Request().Context(), plan); err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFolderContent returns one page of a folder's images, newest first
func (h *ImagesHandler) ListFolderContent(c echo.Context) error {
	folderName := c.Param("folderName")
	if folderName == "" {
		return ClientError(c, h.logger, "folder path parameter is missing.")
	}

	page, err := h.gallery.ListImages(c.Request().Context(), folderName, h.gallery.Options().PageSize, c.QueryParam("token"))
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	h.logger.DebugContext(c.Request().Context(), "images listed", "folder", folderName, "count", len(page.Images))
	return c.JSON(http.StatusOK, page)
}

// ListFolders returns one page of folder names with the default folder first
func (h *ImagesHandler) ListFolders(c echo.Context) error {
	opts := h.gallery.Options()
	page, err := h.gallery.ListFolders(c.Request().Context(), opts.PageSize, c.QueryParam("token"), opts.DefaultFolder)
	if err != nil {
		return ErrorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, page)
}
