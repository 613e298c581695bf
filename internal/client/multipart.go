package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

const defaultFilename = "image.jpg"

// File is the binary part of a multipart request.
type File struct {
	Name        string
	ContentType string // derived from Name when empty
	Data        []byte
}

// ReadFile loads a file from disk, keeping only its base name.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

func (f File) Empty() bool { return len(f.Data) == 0 }

// Filename returns the name sent to the server: empty names become
// image.jpg and names without an extension get .jpg appended.
func (f File) Filename() string {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return defaultFilename
	}
	if !strings.Contains(name, ".") {
		name += ".jpg"
	}
	return name
}

// MediaType returns the part content type.
func (f File) MediaType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return MediaTypeFor(f.Filename())
}

// MediaTypeFor maps a file extension to the content type the service
// expects. Unknown extensions are sent as a generic image.
func MediaTypeFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "gif":
		return "image/gif"
	case "json":
		return "application/json"
	default:
		return "image/*"
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart writes the text fields (in declaration order, skipping
// empty optional values) followed by the file part.
func encodeMultipart(fieldOrder []string, fields map[string]string, filePart string, file *File) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, name := range fieldOrder {
		value, ok := fields[name]
		if !ok || value == "" {
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(name)))
		h.Set("Content-Type", "text/plain; charset=utf-8")
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := part.Write([]byte(value)); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", name, err)
		}
	}

	if filePart != "" && file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(filePart), quoteEscaper.Replace(file.Filename())))
		h.Set("Content-Type", file.MediaType())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", filePart, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", filePart, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}
