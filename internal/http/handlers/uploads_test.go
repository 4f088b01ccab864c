package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubgoods/internal/domain"
	"pubgoods/internal/infra"
	"pubgoods/internal/storage"
)

func uploadApp(t *testing.T, maxBytes int64) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	return &App{
		Store: store,
		Config: &infra.Config{
			UploadMaxBytes: maxBytes,
			StorageBaseURL: "http://localhost:8080/static",
		},
	}, dir
}

func multipartBody(t *testing.T, purpose, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("purpose", purpose))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func storedFileCount(t *testing.T, dir string) int {
	t.Helper()
	count := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestUploadsCreate_StoresFileAndReturnsURL(t *testing.T) {
	app, dir := uploadApp(t, 1<<20)

	body, contentType := multipartBody(t, storage.PurposeBanner, "Hero.PNG", []byte("png-bytes"))
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadsCreate(rr, req)

	require.Equal(t, 200, rr.Code)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.True(t, strings.HasPrefix(payload["key"], "banner/banner-"))
	assert.True(t, strings.HasSuffix(payload["key"], ".png"), "extension is lowercased")
	assert.Equal(t, "http://localhost:8080/static/"+payload["key"], payload["url"])

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(payload["key"])))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestUploadsCreate_RejectsOversizedBeforeStoring(t *testing.T) {
	app, dir := uploadApp(t, 1<<20)

	body, contentType := multipartBody(t, storage.PurposeProfile, "big.png", bytes.Repeat([]byte("x"), 1<<20+1))
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadsCreate(rr, req)

	require.Equal(t, 413, rr.Code)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "File is too large. Maximum allowed size is 1MB.", payload["error"])
	assert.Equal(t, 0, storedFileCount(t, dir), "an oversized upload must not leave a blob behind")
}

func TestCheckUploadSize(t *testing.T) {
	require.NoError(t, checkUploadSize(1<<20, 1<<20), "a file at the limit passes")

	err := checkUploadSize(1<<20+1, 1<<20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTooLarge), "oversized payloads wrap domain.ErrTooLarge")
}

func TestUploadsCreate_RejectsUnknownPurpose(t *testing.T) {
	app, dir := uploadApp(t, 1<<20)

	body, contentType := multipartBody(t, "avatar", "a.png", []byte("x"))
	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	app.UploadsCreate(rr, req)

	require.Equal(t, 400, rr.Code)
	assert.Equal(t, 0, storedFileCount(t, dir))
}
