package controller

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/storage"
	"github.com/anseninnov/conference-registration/app/types"
)

type objectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

type UploadController struct {
	store  objectStore
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewUploadController(store objectStore) *UploadController {
	return &UploadController{
		store:  store,
		logger: factory.NewModuleLogger("upload_controller"),
		now:    time.Now,
	}
}

// Upload stores a multipart file under a timestamp-prefixed key and
// returns the key for the caller to attach to its visa request.
func (c *UploadController) Upload(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	defer src.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.BuildKey(fileHeader.Filename, c.now())
	if err := c.store.Upload(ctx.Request().Context(), key, src, fileHeader.Size, contentType); err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("file upload failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, types.UploadResponse{
		Success:  true,
		FileKey:  key,
		FileName: fileHeader.Filename,
	})
}
