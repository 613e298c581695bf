package screens

import "testing"

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-05-01T08:00:00": "2024-05-01",
		"2024-05-01":          "2024-05-01",
		"2024":                "2024",
		"":                    "",
	}
	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentageAndMetric(t *testing.T) {
	if got := FormatPercentage(0.8567); got != "85.7%" {
		t.Errorf("FormatPercentage = %q", got)
	}
	if got := FormatPercentage(0); got != "0.0%" {
		t.Errorf("FormatPercentage(0) = %q", got)
	}
	if got := FormatMetric(0.12345); got != "0.123" {
		t.Errorf("FormatMetric = %q", got)
	}
	if got := wholePercent(0.756); got != "75%" {
		t.Errorf("wholePercent = %q", got)
	}
}

func TestCatalog(t *testing.T) {
	entries := Catalog()
	if len(entries) != 14 {
		t.Fatalf("catalog has %d screens", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.Name] {
			t.Errorf("duplicate screen %q", e.Name)
		}
		seen[e.Name] = true
		if e.Title == "" || e.Description == "" {
			t.Errorf("screen %q lacks title or description", e.Name)
		}
	}

	entries[0].Title = "changed"
	if e, _ := Lookup(ScreenHome); e.Title == "changed" {
		t.Fatal("Catalog must return a copy")
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("unknown screen found")
	}
	if got := title("nope"); got != "nope" {
		t.Fatalf("title fallback = %q", got)
	}
}

func TestTools(t *testing.T) {
	names := Tools()
	if len(names) != 8 || names[0] != ToolIntegrity || names[len(names)-1] != ToolSync {
		t.Fatalf("tools = %v", names)
	}
}
