package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/calzalindo/catalog-backend/internal/images"
	"github.com/calzalindo/catalog-backend/pkg/logger"
)

// ImageProxy streams a warehouse image through the backend: a full URL
// via ?u=, or a relative path via ?p= tried against the external base
// then the internal one. When nothing answers it redirects to the
// placeholder asset.
func ImageProxy(proxy *images.Proxy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fullURL := strings.TrimSpace(r.URL.Query().Get("u"))
		relative := strings.TrimSpace(r.URL.Query().Get("p"))

		for _, candidate := range proxy.CandidateURLs(fullURL, relative) {
			img, err := proxy.Fetch(r.Context(), candidate)
			if err != nil {
				continue
			}

			w.Header().Set("Content-Type", img.ContentType)
			w.Header().Set("Cache-Control", "public, max-age=86400")
			if _, err := io.Copy(w, img.Body); err != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "image proxy copy interrupted")
			}
			_ = img.Body.Close()
			return
		}

		http.Redirect(w, r, proxy.Placeholder(), http.StatusFound)
	}
}
