// Package storage keeps listing images in Cloudinary.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// resize on upload, never upscale
const uploadTransformation = "c_limit,w_1200,h_800"

type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %v", err)
	}
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, filename string, r io.Reader) (*UploadedImage, error) {
	start := time.Now()
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       uuid.NewString(),
		Transformation: uploadTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}

	logger.GlobalLogger.Debugf("uploaded %s as %s in %v", filename, resp.PublicID, time.Since(start))
	return &UploadedImage{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Error.Message)
	}
	if resp.Result != "ok" {
		logger.GlobalLogger.Warnf("cloudinary destroy %s returned %q", publicID, resp.Result)
	}
	return nil
}
