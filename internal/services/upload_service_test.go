package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func memFile(name string, content []byte) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

var testUploadConfig = config.UploadConfig{MaxFiles: 3, MaxFileSize: 64, Timeout: time.Second}

func TestUploadService_Validate(t *testing.T) {
	svc := NewUploadService(&fakeImages{}, testUploadConfig)

	tests := []struct {
		name       string
		files      []UploadFile
		wantCode   string
		wantFields []string
	}{
		{name: "no files", wantCode: apperrors.ErrCodeInvalidParameters},
		{
			name:     "too many files",
			files:    []UploadFile{memFile("a.png", pngHeader), memFile("b.png", pngHeader), memFile("c.png", pngHeader), memFile("d.png", pngHeader)},
			wantCode: apperrors.ErrCodeInvalidParameters,
		},
		{
			name:       "oversized and wrong type are both reported",
			files:      []UploadFile{memFile("ok.png", pngHeader), memFile("big.png", bytes.Repeat(pngHeader, 8)), memFile("notes.txt", []byte("hello world"))},
			wantCode:   apperrors.ErrCodeValidation,
			wantFields: []string{"big.png", "notes.txt"},
		},
		{name: "valid batch", files: []UploadFile{memFile("ok.png", pngHeader)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.files)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			appErr := requireAppError(t, err, http.StatusBadRequest, tt.wantCode)
			var fields []string
			for _, fe := range appErr.Fields {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestUploadService_Upload(t *testing.T) {
	t.Run("all files uploaded in order", func(t *testing.T) {
		images := &fakeImages{}
		svc := NewUploadService(images, testUploadConfig)

		got, err := svc.Upload(context.Background(), []UploadFile{memFile("a.png", pngHeader), memFile("b.png", pngHeader)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "propertyhub/a", got[0].PublicID)
		assert.Equal(t, []string{"a.png", "b.png"}, images.uploaded)
	})

	t.Run("invalid batch never reaches the image host", func(t *testing.T) {
		images := &fakeImages{}
		svc := NewUploadService(images, testUploadConfig)

		_, err := svc.Upload(context.Background(), []UploadFile{memFile("a.png", pngHeader), memFile("x.txt", []byte("plain text"))})
		requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeValidation)
		assert.Empty(t, images.uploaded)
	})

	t.Run("one failure fails the batch", func(t *testing.T) {
		images := &fakeImages{failOn: "b.png"}
		svc := NewUploadService(images, testUploadConfig)

		got, err := svc.Upload(context.Background(), []UploadFile{memFile("a.png", pngHeader), memFile("b.png", pngHeader), memFile("c.png", pngHeader)})
		assert.Nil(t, got)
		requireAppError(t, err, http.StatusInternalServerError, apperrors.ErrCodeUpload)
		// no rollback of files already stored
		assert.Equal(t, []string{"a.png"}, images.uploaded)
	})
}

func TestUploadService_Delete(t *testing.T) {
	images := &fakeImages{}
	svc := NewUploadService(images, testUploadConfig)

	err := svc.Delete(context.Background(), " / ")
	requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidParameters)

	require.NoError(t, svc.Delete(context.Background(), "/propertyhub/abc"))
	assert.Equal(t, []string{"propertyhub/abc"}, images.deleted)
}
