package slug_test

import (
	"strings"
	"testing"

	"studydesk/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Cell Biology: Mitosis!": "cell-biology-mitosis",
		"   ":                    "note",
		"Über":                   "ber",
	}
	for in, want := range cases {
		if got := slug.Make(in, "note"); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
	if got := slug.Make(strings.Repeat("a", 100), "note"); len(got) != 64 {
		t.Fatalf("expected slug truncated to 64, got %d", len(got))
	}
}
