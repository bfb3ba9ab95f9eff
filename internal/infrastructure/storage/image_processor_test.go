package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestValidateImageAcceptsAllowedFormats(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(encodePNG(t, 10, 10), "image/png"))
	assert.NoError(t, p.ValidateImage(encodeJPEG(t, 10, 10), "image/jpeg"))
	assert.NoError(t, p.ValidateImage(encodeJPEG(t, 10, 10), "image/jpg"))
}

func TestValidateImageRejectsOversize(t *testing.T) {
	p := NewImageProcessor()
	p.MaxSize = 64 // force the limit below a real encoding

	data := encodePNG(t, 100, 100)
	require.Greater(t, int64(len(data)), p.MaxSize)

	err := p.ValidateImage(data, "image/png")
	assert.Error(t, err)
}

func TestValidateImageRejectsDisallowedContentType(t *testing.T) {
	p := NewImageProcessor()

	err := p.ValidateImage(encodePNG(t, 10, 10), "application/pdf")
	assert.Error(t, err)
}

func TestValidateImageRejectsNonImageBytes(t *testing.T) {
	p := NewImageProcessor()

	err := p.ValidateImage([]byte("definitely not an image"), "image/png")
	assert.Error(t, err)
}

func TestThumbnailFitsWithinBounds(t *testing.T) {
	p := NewImageProcessor()

	thumb, err := p.Thumbnail(encodePNG(t, 1200, 600))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 300)
	assert.LessOrEqual(t, cfg.Height, 300)
}
