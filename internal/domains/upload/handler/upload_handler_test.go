package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beetlevault-backend/internal/infrastructure/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryStore struct {
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.objects[key] = data
	return "http://store.local/beetlevault/" + key, nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func uploadRouter(store storage.ObjectStore) *gin.Engine {
	h := NewUploadHandler(store, storage.NewImageProcessor())
	r := gin.New()
	r.POST("/upload", h.Upload)
	return r
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadStoresOriginalAndThumbnail(t *testing.T) {
	store := newMemoryStore()
	r := uploadRouter(store)

	body, contentType := multipartFile(t, "hercules.png", "image/png", encodePNG(t, 600, 400))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ImageURL     string `json:"imageUrl"`
		ThumbnailURL string `json:"thumbnailUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ImageURL, "/original.png")
	assert.Contains(t, resp.ThumbnailURL, "/thumb.jpg")
	assert.Len(t, store.objects, 2)
}

func TestUploadRejectsMissingFile(t *testing.T) {
	r := uploadRouter(newMemoryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsNonImagePayload(t *testing.T) {
	store := newMemoryStore()
	r := uploadRouter(store)

	body, contentType := multipartFile(t, "fake.png", "image/png", []byte("plain text pretending"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.objects)
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	store := newMemoryStore()
	r := uploadRouter(store)

	body, contentType := multipartFile(t, "anim.gif", "image/gif", encodePNG(t, 10, 10))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.objects)
}
