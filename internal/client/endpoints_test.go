package client

import (
	"strings"
	"testing"
)

func TestEndpoints_Catalog(t *testing.T) {
	all := Endpoints()
	if len(all) != 27 {
		t.Fatalf("got %d endpoints, want 27", len(all))
	}

	names := make(map[string]bool, len(all))
	for _, e := range all {
		if e.Name == "" || e.Method == "" || e.Path == "" {
			t.Errorf("incomplete endpoint: %+v", e)
		}
		if names[e.Name] {
			t.Errorf("duplicate endpoint name %q", e.Name)
		}
		names[e.Name] = true
		if strings.HasPrefix(e.Path, "/") && e.Name != EndpointRootInfo.Name {
			t.Errorf("%s: only the root endpoint may be host-absolute", e.Name)
		}
	}
}

func TestEndpoints_MultipartParts(t *testing.T) {
	cases := map[string]string{
		EndpointRegisterPerson.Name:       "foto",
		EndpointUpdatePersonFeatures.Name: "foto",
		EndpointRecognizeByEmail.Name:     "test_image",
		EndpointRecognizeByStudentID.Name: "test_image",
		EndpointRecognizeByPersonID.Name:  "test_image",
		EndpointIdentify.Name:             "test_image",
		EndpointImportData.Name:           "file",
	}
	for _, e := range Endpoints() {
		want, ok := cases[e.Name]
		if e.Multipart() != ok {
			t.Errorf("%s: Multipart() = %v", e.Name, e.Multipart())
		}
		if e.FilePart != want {
			t.Errorf("%s: file part = %q, want %q", e.Name, e.FilePart, want)
		}
	}
}

func TestEndpoint_Expand(t *testing.T) {
	got, err := EndpointUpdatePersonFeatures.Expand(map[string]string{"person_id": "5"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "api/persons/5/update-features" {
		t.Fatalf("Expand = %q", got)
	}

	if _, err := EndpointPersonByID.Expand(nil); err == nil {
		t.Fatal("expected error for missing parameter")
	}
	if _, err := EndpointPersonByEmail.Expand(map[string]string{"email": ""}); err == nil {
		t.Fatal("expected error for empty parameter")
	}
	broken := Endpoint{Name: "broken", Path: "api/{oops"}
	if _, err := broken.Expand(map[string]string{"oops": "x"}); err == nil {
		t.Fatal("expected error for unterminated placeholder")
	}
}
