package queue

import "testing"

func TestSubject(t *testing.T) {
	cases := map[string]string{
		"search":          "activity.search",
		"update-features": "activity.update-features",
		"a.b":             "activity.a_b",
		"x > y*":          "activity.x___y_",
		"":                "activity.unknown",
	}
	for in, want := range cases {
		if got := Subject(in); got != want {
			t.Errorf("Subject(%q) = %q, want %q", in, got, want)
		}
	}
}
