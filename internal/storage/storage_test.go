package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

func TestClampLimit(t *testing.T) {
	cases := map[int]int{
		-1:   DefaultActivityLimit,
		0:    DefaultActivityLimit,
		1:    1,
		50:   50,
		500:  500,
		501:  MaxActivityLimit,
		9999: MaxActivityLimit,
	}
	for in, want := range cases {
		if got := ClampLimit(in); got != want {
			t.Errorf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestArchiveKey(t *testing.T) {
	at := time.Date(2024, time.March, 7, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	got := ArchiveKey("export_all.json", at)
	if got != "exports/2024/03/08/export_all.json" {
		t.Fatalf("ArchiveKey = %q", got)
	}

	if got := ArchiveKey("../../etc/passwd", at); got != "exports/2024/03/08/passwd" {
		t.Fatalf("ArchiveKey should keep only the base name, got %q", got)
	}
}

func TestNewestFirst(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	objects := []minio.ObjectInfo{
		{Key: "exports/2024/05/31/a.json", LastModified: day.Add(-time.Hour)},
		{Key: "exports/2024/06/01/c.json", LastModified: day.Add(2 * time.Hour)},
		{Key: "exports/2024/06/01/b.json", LastModified: day.Add(time.Hour)},
		{Key: "exports/2024/06/01/d.json", LastModified: day.Add(2 * time.Hour)},
	}

	got := newestFirst(objects, 3)
	want := []string{"exports/2024/06/01/d.json", "exports/2024/06/01/c.json", "exports/2024/06/01/b.json"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("newestFirst = %v, want %v", got, want)
	}

	if got := newestFirst(nil, 10); len(got) != 0 {
		t.Fatalf("empty listing = %v", got)
	}
}

func TestObjectError(t *testing.T) {
	missing := objectError("exports/a.json", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})
	if !errors.Is(missing, ErrObjectNotFound) {
		t.Fatalf("NoSuchKey should map to ErrObjectNotFound, got %v", missing)
	}

	outage := objectError("exports/a.json", errors.New("dial tcp: connection refused"))
	if errors.Is(outage, ErrObjectNotFound) {
		t.Fatalf("connection failure must not look like a missing object: %v", outage)
	}
}
