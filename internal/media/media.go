// Package media uploads product, offer and merit images to a hosting service
// and returns their public URL.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"produce-kart/internal/model"

	"github.com/google/uuid"
)

// Image is an uploaded file waiting to be hosted.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Uploader hosts an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, img Image) (string, error)
}

// Validate checks that img is an image no larger than maxSize bytes and
// returns a copy whose body can be read again by each uploader attempt.
// The content type is sniffed when the client did not send one.
func Validate(img Image, maxSize int64) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(img.Body, maxSize+1))
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > maxSize {
		return Image{}, model.NewDomainError(model.ErrCodeInvalidImage,
			fmt.Sprintf("Image is larger than the %d byte limit", maxSize))
	}
	if len(data) == 0 {
		return Image{}, model.ErrInvalidImage
	}

	contentType := img.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return Image{}, model.ErrInvalidImage
	}

	return Image{
		Filename:    img.Filename,
		ContentType: contentType,
		Body:        bytes.NewReader(data),
	}, nil
}

// objectName derives a unique storage name that keeps the original extension.
func objectName(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return uuid.NewString() + ext
}

// rewind resets the body if it supports seeking, so a fallback uploader can
// read it again.
func rewind(img Image) {
	if s, ok := img.Body.(io.Seeker); ok {
		_, _ = s.Seek(0, io.SeekStart)
	}
}
