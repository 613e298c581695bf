package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/your-org/frfront/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(config.APIConfig{
		BaseURL:        srv.URL,
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		UserAgent:      "frfront-test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://host/", "://broken"} {
		if _, err := New(config.APIConfig{BaseURL: raw}); err == nil {
			t.Errorf("New(%q): expected error", raw)
		}
	}
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	c, err := New(config.APIConfig{BaseURL: "http://localhost:8000"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.BaseURL() != "http://localhost:8000/" {
		t.Fatalf("BaseURL = %q", c.BaseURL())
	}
}

func TestRegisterPerson(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/persons/register" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		for field, want := range map[string]string{
			"nombre":        "Ana",
			"apellidos":     "Pérez",
			"correo":        "ana@x.com",
			"id_estudiante": "S1",
		} {
			if got := r.FormValue(field); got != want {
				t.Errorf("field %s = %q, want %q", field, got, want)
			}
		}
		f, hdr, err := r.FormFile("foto")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "jpegbytes" {
			t.Errorf("file content = %q", data)
		}
		if hdr.Filename != "face.jpg" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("file content type = %q", ct)
		}
		writeJSON(w, http.StatusOK, `{"message":"ok","person_id":1,"pk":"abc","features_count":128,
			"faces_detected":1,"processing_method":"enhanced","processing_time":0.42,
			"system_info":{"enhanced_processing":true,"feature_method":"hybrid"}}`)
	})

	resp, err := c.RegisterPerson(context.Background(), Registration{
		Name:      "Ana",
		Surname:   "Pérez",
		Email:     "ana@x.com",
		StudentID: "S1",
		Photo:     File{Name: "face", Data: []byte("jpegbytes")},
	})
	if err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}
	if resp.PersonID != 1 || resp.FeaturesCount != 128 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.SystemInfo.FeatureMethod == nil || *resp.SystemInfo.FeatureMethod != "hybrid" {
		t.Fatalf("feature method not decoded: %+v", resp.SystemInfo)
	}
}

func TestRegisterPerson_OmitsEmptyStudentID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if _, ok := r.MultipartForm.Value["id_estudiante"]; ok {
			t.Error("id_estudiante should not be sent when empty")
		}
		writeJSON(w, http.StatusOK, `{"person_id":2}`)
	})

	_, err := c.RegisterPerson(context.Background(), Registration{
		Name: "Luis", Surname: "Gómez", Email: "luis@x.com",
		Photo: File{Name: "luis.png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}
}

func TestGetPersonByEmail_EscapesPathValue(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.EscapedPath(); got != "/api/persons/search/email/ana%20maria@x.com" {
			t.Errorf("escaped path = %q", got)
		}
		writeJSON(w, http.StatusOK, `{"id":7,"nombre":"Ana","apellidos":"María","correo":"ana maria@x.com"}`)
	})

	p, err := c.GetPersonByEmail(context.Background(), "ana maria@x.com")
	if err != nil {
		t.Fatalf("GetPersonByEmail: %v", err)
	}
	if p.ID != 7 || p.FullName() != "Ana María" {
		t.Fatalf("unexpected person: %+v", p)
	}
}

func TestGetPersonByEmail_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"detail":"Persona no encontrada"}`)
	})

	_, err := c.GetPersonByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, ErrBadRequest) {
		t.Fatal("404 must not match ErrBadRequest")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Operation != "person_by_email" {
		t.Fatalf("expected APIError for person_by_email, got %#v", err)
	}
	if got := Describe(err); got != "error: Not Found (Persona no encontrada)" {
		t.Fatalf("Describe = %q", got)
	}
	if ErrorKind(err) != "status" {
		t.Fatalf("ErrorKind = %q", ErrorKind(err))
	}
}

func TestBadRequestWithoutBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.GetPersonByStudentID(context.Background(), "??")
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	if got := Describe(err); got != "error: Bad Request" {
		t.Fatalf("Describe = %q", got)
	}
}

func TestTransportError(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.GeneralHealth(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !strings.HasPrefix(Describe(err), "connection error: ") {
		t.Fatalf("Describe = %q", Describe(err))
	}
	if ErrorKind(err) != "transport" {
		t.Fatalf("ErrorKind = %q", ErrorKind(err))
	}
}

func TestUndecodableBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>gateway</html>`)
	})

	_, err := c.ListPersons(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SystemInfo(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCleanup_DefaultsMaxAge(t *testing.T) {
	var got []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/cleanup" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		got = append(got, r.URL.Query().Get("max_age_hours"))
		writeJSON(w, http.StatusOK, `{"message":"done","max_age_hours":24,"status":"success"}`)
	})

	if _, err := c.Cleanup(context.Background(), 0); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := c.Cleanup(context.Background(), 6); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if len(got) != 2 || got[0] != "24" || got[1] != "6" {
		t.Fatalf("max_age_hours = %v", got)
	}
}

func TestRootInfo_ResolvesAgainstHostRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("path = %q, want /", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"message":"Facial Recognition API","version":"2.0","status":"running"}`)
	}))
	defer srv.Close()

	c, err := New(config.APIConfig{BaseURL: srv.URL + "/prefix/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := c.RootInfo(context.Background())
	if err != nil {
		t.Fatalf("RootInfo: %v", err)
	}
	if info.Version != "2.0" {
		t.Fatalf("version = %q", info.Version)
	}
}

func TestRelativePathsKeepBasePrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prefix/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"status":"healthy"}`)
	}))
	defer srv.Close()

	c, err := New(config.APIConfig{BaseURL: srv.URL + "/prefix"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.GeneralHealth(context.Background()); err != nil {
		t.Fatalf("GeneralHealth: %v", err)
	}
}

func TestDownloadFile(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/data/download/export_20240101.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1}]`)
	})

	d, err := c.DownloadFile(context.Background(), "export_20240101.json")
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	if d.Filename != "export_20240101.json" || d.ContentType != "application/json" || string(d.Data) != `[{"id":1}]` {
		t.Fatalf("unexpected download: %+v", d)
	}
}

func TestDownloadFile_OversizedBodyFails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, strings.Repeat("x", 80))
	})
	c.maxBody = 64

	d, err := c.DownloadFile(context.Background(), "export.json")
	if d != nil {
		t.Fatalf("expected no download, got %d bytes", len(d.Data))
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !strings.Contains(err.Error(), "response exceeds 64 bytes") {
		t.Fatalf("error = %v", err)
	}

	// exactly at the limit is still a complete body
	c.maxBody = 80
	d, err = c.DownloadFile(context.Background(), "export.json")
	if err != nil || len(d.Data) != 80 {
		t.Fatalf("DownloadFile at limit: %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(RequestIDHeader); got != "req-42" {
			t.Errorf("request id = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "frfront-test" {
			t.Errorf("user agent = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("accept = %q", got)
		}
		writeJSON(w, http.StatusOK, `{}`)
	})

	ctx := WithRequestID(context.Background(), "req-42")
	if _, err := c.GetRecognitionStats(ctx); err != nil {
		t.Fatalf("GetRecognitionStats: %v", err)
	}
}

func TestOperationsHitDeclaredEndpoints(t *testing.T) {
	type seen struct{ method, path string }
	var last seen
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		last = seen{r.Method, r.URL.Path}
		writeJSON(w, http.StatusOK, `{}`)
	})

	ctx := context.Background()
	img := File{Name: "probe.jpg", Data: []byte("x")}
	cases := []struct {
		endpoint Endpoint
		path     string
		call     func() error
	}{
		{EndpointListPersons, "/api/persons/list", func() error { _, err := c.ListPersons(ctx); return err }},
		{EndpointPersonByStudentID, "/api/persons/search/student/S9", func() error { _, err := c.GetPersonByStudentID(ctx, "S9"); return err }},
		{EndpointPersonByID, "/api/persons/12", func() error { _, err := c.GetPersonByID(ctx, 12); return err }},
		{EndpointUpdatePersonFeatures, "/api/persons/12/update-features", func() error { _, err := c.UpdatePersonFeatures(ctx, 12, img); return err }},
		{EndpointProcessingStats, "/api/persons/stats/processing", func() error { _, err := c.GetProcessingStats(ctx); return err }},
		{EndpointRecognizeByEmail, "/api/recognition/compare/email", func() error { _, err := c.RecognizeByEmail(ctx, "a@x.com", img); return err }},
		{EndpointRecognizeByStudentID, "/api/recognition/compare/student", func() error { _, err := c.RecognizeByStudentID(ctx, "S9", img); return err }},
		{EndpointRecognizeByPersonID, "/api/recognition/compare/id/3", func() error { _, err := c.RecognizeByPersonID(ctx, 3, img); return err }},
		{EndpointIdentify, "/api/recognition/identify", func() error { _, err := c.Identify(ctx, img); return err }},
		{EndpointRecognitionStats, "/api/recognition/stats", func() error { _, err := c.GetRecognitionStats(ctx); return err }},
		{EndpointSystemStats, "/api/admin/stats", func() error { _, err := c.GetSystemStats(ctx); return err }},
		{EndpointAdminHealth, "/api/admin/health", func() error { _, err := c.GetAdminHealth(ctx); return err }},
		{EndpointIntegrity, "/api/admin/integrity", func() error { _, err := c.CheckIntegrity(ctx); return err }},
		{EndpointSystemConfig, "/api/admin/config", func() error { _, err := c.GetSystemConfig(ctx); return err }},
		{EndpointPerformance, "/api/admin/performance", func() error { _, err := c.GetPerformance(ctx); return err }},
		{EndpointExportAll, "/api/data/export/all", func() error { _, err := c.ExportAll(ctx); return err }},
		{EndpointExportPersonByEmail, "/api/data/export/person/email/a@x.com", func() error { _, err := c.ExportPersonByEmail(ctx, "a@x.com"); return err }},
		{EndpointImportData, "/api/data/import", func() error {
			_, err := c.ImportData(ctx, File{Name: "export.json", Data: []byte("[]")})
			return err
		}},
		{EndpointCreateBackup, "/api/data/backup/create", func() error { _, err := c.CreateBackup(ctx); return err }},
		{EndpointSyncCheck, "/api/data/sync/check", func() error { _, err := c.CheckSync(ctx); return err }},
		{EndpointGeneralHealth, "/health", func() error { _, err := c.GeneralHealth(ctx); return err }},
		{EndpointSystemInfo, "/info", func() error { _, err := c.SystemInfo(ctx); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.endpoint.Name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatalf("call: %v", err)
			}
			if last.method != tc.endpoint.Method || last.path != tc.path {
				t.Fatalf("got %s %s, want %s %s", last.method, last.path, tc.endpoint.Method, tc.path)
			}
		})
	}
}
