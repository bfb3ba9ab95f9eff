package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

const thumbnailSize = 300

// ImageProcessor validates uploaded images and produces thumbnail variants.
type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 3 * 1024 * 1024} // 3MB
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateImage checks size, declared content type and that the bytes decode
// as an allowed image format.
func (p *ImageProcessor) ValidateImage(data []byte, contentType string) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("content type %s not allowed (only jpeg/png/webp)", contentType)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "webp":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png/webp)", format)
	}
}

// Thumbnail resizes the image to fit within 300x300 and re-encodes it as
// JPEG quality 90.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}
