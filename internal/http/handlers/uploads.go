package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"pubgoods/internal/domain"
	"pubgoods/internal/storage"
)

// formParseOverhead covers multipart boundaries and the purpose field on top
// of the file payload itself.
const formParseOverhead = 64 << 10

// UploadsCreate accepts one image upload, rejects anything over the
// configured ceiling before touching the store, and returns the public URL
// to place on the owning record.
func (a *App) UploadsCreate(w http.ResponseWriter, r *http.Request) {
	maxBytes := a.Config.UploadMaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+formParseOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		a.error(w, http.StatusRequestEntityTooLarge, "too_large", sizeLimitMessage(maxBytes))
		return
	}

	purpose := r.FormValue("purpose")
	if !storage.ValidPurpose(purpose) {
		a.error(w, http.StatusBadRequest, "bad_request", "purpose must be \"profile\" or \"banner\"")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file is required")
		return
	}
	defer file.Close()

	// Size check happens before any store write; an oversized file must not
	// produce a blob.
	if err := checkUploadSize(header.Size, maxBytes); err != nil {
		a.Logger.Warn().Err(err).Str("name", header.Filename).Msg("upload rejected")
		a.error(w, http.StatusRequestEntityTooLarge, "too_large", sizeLimitMessage(maxBytes))
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read file")
		return
	}

	key := storage.BuildKey(purpose, header.Filename, time.Now())
	storedKey, err := a.Store.Write(r.Context(), key, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("store upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to store file")
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"key": storedKey,
		"url": storage.PublicURL(a.Config.StorageBaseURL, storedKey),
	})
}

// checkUploadSize classifies oversized payloads with domain.ErrTooLarge so
// rejections stay traceable in logs.
func checkUploadSize(size, limit int64) error {
	if size > limit {
		return fmt.Errorf("%d bytes over the %d byte limit: %w", size, limit, domain.ErrTooLarge)
	}
	return nil
}

func sizeLimitMessage(maxBytes int64) string {
	return fmt.Sprintf("File is too large. Maximum allowed size is %dMB.", maxBytes>>20)
}
