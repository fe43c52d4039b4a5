package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *CloudinaryStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cld, err := cloudinary.NewFromParams("demo", "key", "secret")
	require.NoError(t, err)
	cld.Config.API.UploadPrefix = srv.URL
	return NewCloudinaryStore(cld, "detailing/services")
}

func TestNewCloudinaryStoreFromParamsRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryStoreFromParams("demo", "", "secret", "x")
	assert.Error(t, err)
}

func TestUploadImage(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/image/upload"), r.URL.Path)
		assert.Equal(t, "detailing/services", r.FormValue("folder"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"detailing/services/abc","secure_url":"https://res.example/abc.jpg","width":800,"height":600}`))
	})

	img, err := store.UploadImage(context.Background(), strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "detailing/services/abc", img.PublicID)
	assert.Equal(t, "https://res.example/abc.jpg", img.URL)
	assert.Equal(t, 800, img.Width)
}

func TestUploadImageRejected(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := store.UploadImage(context.Background(), strings.NewReader("not an image"))
	assert.ErrorContains(t, err, "Invalid image file")
}

func TestDeleteImage(t *testing.T) {
	results := map[string]string{"gone": "ok", "missing": "not found", "odd": "error"}
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/image/destroy"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"` + results[r.FormValue("public_id")] + `"}`))
	})

	assert.NoError(t, store.DeleteImage(context.Background(), "gone"))
	assert.NoError(t, store.DeleteImage(context.Background(), "missing"))
	assert.Error(t, store.DeleteImage(context.Background(), "odd"))
}
