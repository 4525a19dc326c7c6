package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/services"

	"github.com/gin-gonic/gin"
)

// multipart fields for the batch and single-file uploads
const (
	ImagesField = "images"
	ImageField  = "image"
)

type UploadHandler struct {
	uploadService *services.UploadService
	maxBody       int64
}

// NewUploadHandler caps request bodies at maxBody bytes.
func NewUploadHandler(uploadService *services.UploadService, maxBody int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBody: maxBody}
}

func uploadFiles(headers []*multipart.FileHeader) []services.UploadFile {
	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, services.UploadFile{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return files
}

// UploadImages godoc
// @Summary Upload listing images
// @Description The whole batch is checked for count, size and type before anything is stored
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Images (jpeg, png or webp)"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /upload/images [post]
func (h *UploadHandler) UploadImages(c *gin.Context) {
	if h.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperrors.NewAppError(err.Error(), apperrors.MsgNoImages, apperrors.ErrCodeInvalidParameters, http.StatusBadRequest, err))
		return
	}

	images, err := h.uploadService.Upload(c.Request.Context(), uploadFiles(form.File[ImagesField]))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(images), images)
}

// UploadImage godoc
// @Summary Upload one image
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image (jpeg, png or webp)"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /upload/image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	}
	fh, err := c.FormFile(ImageField)
	if err != nil {
		c.Error(apperrors.NewAppError(err.Error(), apperrors.MsgNoImage, apperrors.ErrCodeInvalidParameters, http.StatusBadRequest, err))
		return
	}

	images, err := h.uploadService.Upload(c.Request.Context(), uploadFiles([]*multipart.FileHeader{fh}))
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Image uploaded successfully", images[0])
}

// DeleteImageRequest names the image to remove.
type DeleteImageRequest struct {
	PublicID string `json:"publicId"`
}

// DeleteImageByBody godoc
// @Summary Delete an uploaded image named in the body
// @Tags Upload
// @Accept json
// @Produce json
// @Param body body DeleteImageRequest true "Public ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /upload/image [delete]
func (h *UploadHandler) DeleteImageByBody(c *gin.Context) {
	var req DeleteImageRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.uploadService.Delete(c.Request.Context(), req.PublicID); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Image deleted successfully", nil)
}

// DeleteImage godoc
// @Summary Delete an uploaded image
// @Description The public id may contain slashes, e.g. propertyhub/abc
// @Tags Upload
// @Produce json
// @Param publicId path string true "Public ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /upload/images/{publicId} [delete]
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	if err := h.uploadService.Delete(c.Request.Context(), c.Param("publicId")); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Image deleted successfully", nil)
}
