package images

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateURLs(t *testing.T) {
	proxy := NewProxy(config.ImagesConfig{
		ProxyBaseExt: "https://ext.example/static/images/",
		ProxyBaseInt: "http://int.local/static/images",
	})

	assert.Equal(t,
		[]string{"http://full/img.jpg"},
		proxy.CandidateURLs("http://full/img.jpg", "ignored.jpg"),
	)
	assert.Equal(t,
		[]string{
			"https://ext.example/static/images/123/a.jpg",
			"http://int.local/static/images/123/a.jpg",
		},
		proxy.CandidateURLs("", "123/a.jpg"),
	)
	assert.Nil(t, proxy.CandidateURLs("", ""))
}

func TestFetch_ReturnsBodyAndContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	proxy := NewProxy(config.ImagesConfig{ProxyTimeout: time.Second})

	img, err := proxy.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = img.Body.Close() }()

	assert.Equal(t, "image/png", img.ContentType)
	body, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
}

func TestFetch_DefaultsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte{0xff, 0xd8})
	}))
	defer server.Close()

	proxy := NewProxy(config.ImagesConfig{ProxyTimeout: time.Second})

	img, err := proxy.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = img.Body.Close() }()
	assert.Equal(t, "image/jpeg", img.ContentType)
}

func TestFetch_BadStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	proxy := NewProxy(config.ImagesConfig{ProxyTimeout: time.Second})

	_, err := proxy.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	proxy := NewProxy(config.ImagesConfig{PlaceholderPath: "/no_image.png"})
	assert.Equal(t, "/no_image.png", proxy.Placeholder())
}
