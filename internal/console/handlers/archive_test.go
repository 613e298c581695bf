package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/your-org/frfront/internal/storage"
)

type mapObjects map[string][]byte

func (m mapObjects) ArchivedFile(_ context.Context, rel string) ([]byte, error) {
	data, ok := m[rel]
	if !ok {
		return nil, fmt.Errorf("%s: %w", rel, storage.ErrObjectNotFound)
	}
	return data, nil
}

type brokenArchive struct{}

func (brokenArchive) ArchivedFile(context.Context, string) ([]byte, error) {
	return nil, errors.New("dial tcp 10.0.0.5:9000: connection refused")
}

func archiveEngine(store ArchiveReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/archive/*key", NewArchiveHandler(store).Get)
	return r
}

func TestArchiveGet(t *testing.T) {
	r := archiveEngine(mapObjects{"2024/06/01/export.json": []byte(`[]`)})

	cases := []struct {
		path string
		want int
	}{
		{"/archive/2024/06/01/export.json", http.StatusOK},
		{"/archive/2024/06/01/other.json", http.StatusNotFound},
		{"/archive/", http.StatusBadRequest},
		{"/archive/2024/../../secret", http.StatusBadRequest},
		{"/archive/2024//06/export.json", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.want {
			t.Errorf("GET %s: status %d, want %d", tc.path, w.Code, tc.want)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/archive/2024/06/01/export.json", nil))
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestArchiveNotConfigured(t *testing.T) {
	w := httptest.NewRecorder()
	archiveEngine(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/archive/a.json", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestArchiveStoreFailureIsBadGateway(t *testing.T) {
	w := httptest.NewRecorder()
	archiveEngine(brokenArchive{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/archive/2024/06/01/export.json", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}
