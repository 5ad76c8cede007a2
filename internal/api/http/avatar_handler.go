package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	auth "github.com/matchpoint-gg/matchpoint/internal/auth/middleware"
	"github.com/matchpoint-gg/matchpoint/internal/avatar"
	"github.com/matchpoint-gg/matchpoint/internal/user"
)

// POST /api/me/avatar — multipart, single "file" part, streamed straight
// into the pipeline without buffering the payload.
func UploadAvatarHandler(p *avatar.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := auth.UserIDFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing identity")
			return
		}

		part, err := filePart(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer part.Close()

		key, err := p.Update(r.Context(), ownerID, part.FileName(), part)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, map[string]string{"avatarUrl": "/" + key})
		case errors.Is(err, avatar.ErrNoFile):
			writeError(w, http.StatusBadRequest, "No file uploaded")
		case errors.Is(err, avatar.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, "Only .png allowed")
		case errors.Is(err, avatar.ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		case errors.Is(err, user.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeError(w, http.StatusInternalServerError, "Upload failed")
		}
	}
}

// filePart walks the multipart stream to the first "file" part. Using the
// streaming reader (not ParseMultipartForm) keeps the payload out of memory
// and lets the size ceiling act on the wire bytes as they arrive.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, avatar.ErrNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" {
			return part, nil
		}
		_ = part.Close()
	}
}
