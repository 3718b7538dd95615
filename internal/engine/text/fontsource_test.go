package text

import (
	"testing"
)

func TestLoadSourceEmbeddedFallback(t *testing.T) {
	for _, path := range []string{"", "/nonexistent/font.ttf"} {
		src := LoadSource(path)
		if src.Origin() != "embedded" {
			t.Errorf("LoadSource(%q).Origin() = %q, want embedded", path, src.Origin())
		}

		f, err := src.Face(14)
		if err != nil {
			t.Fatalf("Face(14) error = %v", err)
		}
		if Width(f, "SKU-00123") <= 0 {
			t.Error("embedded face measures zero width")
		}
		if LineHeight(f) <= 0 {
			t.Error("embedded face has zero line height")
		}
	}
}

func TestFaceSizesDiffer(t *testing.T) {
	src := LoadSource("")

	small, err := src.Face(10)
	if err != nil {
		t.Fatalf("Face(10) error = %v", err)
	}
	large, err := src.Face(40)
	if err != nil {
		t.Fatalf("Face(40) error = %v", err)
	}

	if Width(small, "warehouse") >= Width(large, "warehouse") {
		t.Error("larger point size did not widen the rendered text")
	}
}
