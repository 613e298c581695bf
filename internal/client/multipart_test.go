package client

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

func TestFile_Filename(t *testing.T) {
	cases := map[string]string{
		"":            "image.jpg",
		"  ":          "image.jpg",
		"photo":       "photo.jpg",
		"photo.png":   "photo.png",
		"scan.WEBP":   "scan.WEBP",
		"export.json": "export.json",
	}
	for in, want := range cases {
		if got := (File{Name: in}).Filename(); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMediaTypeFor(t *testing.T) {
	cases := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.png":  "image/png",
		"a.webp": "image/webp",
		"a.bmp":  "image/bmp",
		"a.gif":  "image/gif",
		"a.json": "application/json",
		"a.tiff": "image/*",
		"noext":  "image/*",
	}
	for in, want := range cases {
		if got := MediaTypeFor(in); got != want {
			t.Errorf("MediaTypeFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFile_MediaTypeOverride(t *testing.T) {
	f := File{Name: "a.jpg", ContentType: "image/heic"}
	if f.MediaType() != "image/heic" {
		t.Fatalf("MediaType = %q", f.MediaType())
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face.png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Name != "face.png" || string(f.Data) != "png" || f.Empty() {
		t.Fatalf("unexpected file: %+v", f)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEncodeMultipart_Order(t *testing.T) {
	body, contentType, err := encodeMultipart(
		[]string{"nombre", "apellidos", "id_estudiante"},
		map[string]string{"nombre": "Ana", "apellidos": "Ruiz", "id_estudiante": ""},
		"foto",
		&File{Data: []byte("img")},
	)
	if err != nil {
		t.Fatalf("encodeMultipart: %v", err)
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}

	r := multipart.NewReader(body, params["boundary"])
	var names []string
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		names = append(names, p.FormName())
		if p.FormName() == "foto" {
			if p.FileName() != "image.jpg" {
				t.Errorf("file name = %q", p.FileName())
			}
			if ct := p.Header.Get("Content-Type"); ct != "image/jpeg" {
				t.Errorf("file content type = %q", ct)
			}
		}
	}
	want := []string{"nombre", "apellidos", "foto"}
	if len(names) != len(want) {
		t.Fatalf("parts = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("parts = %v, want %v", names, want)
		}
	}
}
