package text

import (
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 advances every glyph 7px, which makes widths exact.
var face = basicfont.Face7x13

func TestWrapTwoWordsPerLine(t *testing.T) {
	// "A B" is 3 glyphs = 21px; "A B C" is 35px.
	lines := Wrap(face, "A B C D", 21)

	want := []string{"A B", "C D"}
	if len(lines) != len(want) {
		t.Fatalf("Wrap() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapPreservesWords(t *testing.T) {
	input := "  pallet   of  38x100 thermal\tlabels for zone B  "
	normalized := Normalize(input)

	for budget := 7; budget <= 300; budget += 13 {
		lines := Wrap(face, input, budget)
		if got := strings.Join(lines, " "); got != normalized {
			t.Fatalf("budget %d: joined lines = %q, want %q", budget, got, normalized)
		}
	}
}

func TestWrapLineCountMonotonic(t *testing.T) {
	input := "one two three four five six seven eight"

	prev := 0
	for budget := 400; budget >= 7; budget -= 7 {
		n := len(Wrap(face, input, budget))
		if prev != 0 && n < prev {
			t.Fatalf("line count decreased from %d to %d as budget shrank to %d", prev, n, budget)
		}
		prev = n
	}
}

func TestWrapOverlongWordStillPlaced(t *testing.T) {
	lines := Wrap(face, "tiny incomprehensibilities end", 35)

	found := false
	for _, ln := range lines {
		if strings.Contains(ln, "incomprehensibilities") {
			found = true
		}
	}
	if !found {
		t.Fatalf("over-budget word dropped: %v", lines)
	}
}

func TestWrapEmpty(t *testing.T) {
	if lines := Wrap(face, "   ", 100); lines != nil {
		t.Errorf("Wrap(blank) = %v, want nil", lines)
	}
}
