package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

// MountAssets serves stored avatar objects so the root-relative avatarUrl
// returned by the upload endpoint resolves. Reads go through the blob
// store, which refuses keys that escape the storage root.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer rc.Close()
		if strings.HasSuffix(strings.ToLower(key), ".png") {
			w.Header().Set("Content-Type", "image/png")
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		_, _ = io.Copy(w, rc)
	})
}
