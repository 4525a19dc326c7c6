package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/pkg/metrics"
	"propertyhub-api/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
)

// AllowedImageTypes are the accepted upload formats.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

type UploadService struct {
	images storage.ImageStore
	cfg    config.UploadConfig
}

func NewUploadService(images storage.ImageStore, cfg config.UploadConfig) *UploadService {
	return &UploadService{images: images, cfg: cfg}
}

func detectType(f UploadFile) (string, error) {
	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// Validate checks the whole batch before anything is sent to the image host.
func (s *UploadService) Validate(files []UploadFile) error {
	if len(files) == 0 {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgNoImages)
	}
	if len(files) > s.cfg.MaxFiles {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters,
			fmt.Sprintf("%s (maximum %d)", apperrors.MsgTooManyImages, s.cfg.MaxFiles))
	}

	var problems []models.FieldError
	for _, f := range files {
		if f.Size > s.cfg.MaxFileSize {
			problems = append(problems, models.FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("File exceeds the %d MB limit", s.cfg.MaxFileSize>>20),
			})
			continue
		}
		detected, err := detectType(f)
		if err != nil {
			problems = append(problems, models.FieldError{Field: f.Name, Message: "File could not be read"})
			continue
		}
		if !mimetype.EqualsAny(detected, AllowedImageTypes...) {
			problems = append(problems, models.FieldError{
				Field:   f.Name,
				Message: "Only " + strings.Join(AllowedImageTypes, ", ") + " images are allowed",
			})
		}
	}
	if len(problems) > 0 {
		appErr := apperrors.NewValidationError(problems)
		appErr.UserMessage = apperrors.MsgInvalidImages
		return appErr
	}
	return nil
}

// Upload validates the batch and uploads it one file at a time. The first
// failure fails the batch; files already stored stay in place.
func (s *UploadService) Upload(ctx context.Context, files []UploadFile) ([]storage.UploadedImage, error) {
	if err := s.Validate(files); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Add(float64(len(files)))
		return nil, err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	uploaded := make([]storage.UploadedImage, 0, len(files))
	for _, f := range files {
		image, err := s.uploadOne(ctx, f)
		if err != nil {
			metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
			logger.GlobalLogger.Errorf("upload of %s failed after %d of %d files: %v", f.Name, len(uploaded), len(files), err)
			return nil, apperrors.NewAppError(
				fmt.Sprintf("upload %s: %v", f.Name, err),
				apperrors.MsgUploadFailed,
				apperrors.ErrCodeUpload,
				http.StatusInternalServerError,
				err,
			)
		}
		metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
		uploaded = append(uploaded, *image)
	}
	logger.GlobalLogger.Debugf("uploaded %d images in %v", len(uploaded), time.Since(start))
	return uploaded, nil
}

func (s *UploadService) uploadOne(ctx context.Context, f UploadFile) (*storage.UploadedImage, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return s.images.Upload(ctx, f.Name, r)
}

func (s *UploadService) Delete(ctx context.Context, publicID string) error {
	publicID = strings.Trim(strings.TrimSpace(publicID), "/")
	if publicID == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgMissingPublicID)
	}
	if err := s.images.Delete(ctx, publicID); err != nil {
		return apperrors.NewAppError(
			fmt.Sprintf("delete image %s: %v", publicID, err),
			apperrors.MsgUploadFailed,
			apperrors.ErrCodeUpload,
			http.StatusInternalServerError,
			err,
		)
	}
	return nil
}
