package compose

import (
	"image"
	"image/color"
	"testing"
	"time"

	"labelr/internal/engine/text"
)

func intp(v int) *int { return &v }

func testSymbol(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestComposeBottom(t *testing.T) {
	src := text.LoadSource("")
	sym := testSymbol(200, 100)

	out, err := Compose(src, sym, Options{
		Description: "shelf A1 spare parts",
		Position:    PositionBottom,
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	b := out.Bounds()
	if b.Dx() < 200+2*pad {
		t.Errorf("composed width %d narrower than symbol plus padding", b.Dx())
	}
	// Symbol plus at least one text line plus padding.
	if b.Dy() <= 100+2*pad {
		t.Errorf("composed height %d leaves no room for text", b.Dy())
	}
}

func TestComposeRightWiderThanBottom(t *testing.T) {
	src := text.LoadSource("")
	sym := testSymbol(200, 100)
	opts := Options{Description: "zone B"}

	opts.Position = PositionBottom
	bottom, err := Compose(src, sym, opts)
	if err != nil {
		t.Fatalf("Compose(bottom) error = %v", err)
	}

	opts.Position = PositionRight
	right, err := Compose(src, sym, opts)
	if err != nil {
		t.Fatalf("Compose(right) error = %v", err)
	}

	if right.Bounds().Dx() <= bottom.Bounds().Dx() {
		t.Errorf("side-by-side layout width %d not wider than stacked %d",
			right.Bounds().Dx(), bottom.Bounds().Dx())
	}
}

func TestComposeShrinksWideSymbol(t *testing.T) {
	src := text.LoadSource("")
	sym := testSymbol(1000, 200)

	out, err := Compose(src, sym, Options{SymbolWidthPx: 420})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if got := out.Bounds().Dx(); got > 420+2*pad {
		t.Errorf("composed width %d, want at most %d", got, 420+2*pad)
	}
}

func TestComposeEmptyDescription(t *testing.T) {
	src := text.LoadSource("")
	sym := testSymbol(100, 50)

	out, err := Compose(src, sym, Options{Description: "   "})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if out.Bounds().Empty() {
		t.Error("Compose() returned empty image")
	}
}

func TestComposeRejectsBadOptions(t *testing.T) {
	src := text.LoadSource("")
	sym := testSymbol(100, 50)

	cases := []Options{
		{FontSize: 4},
		{FontSize: 100},
		{Gap: intp(-60)},
		{Position: "diagonal"},
	}
	for _, opts := range cases {
		if _, err := Compose(src, sym, opts); err == nil {
			t.Errorf("Compose(%+v) accepted invalid options", opts)
		}
	}
}

func TestComposeGapDefaultsWhenOmitted(t *testing.T) {
	src := text.LoadSource("")
	sym := testSymbol(200, 100)

	omitted, err := Compose(src, sym, Options{Description: "zone B"})
	if err != nil {
		t.Fatalf("Compose(gap omitted) error = %v", err)
	}
	explicit, err := Compose(src, sym, Options{Description: "zone B", Gap: intp(DefaultGap)})
	if err != nil {
		t.Fatalf("Compose(gap=%d) error = %v", DefaultGap, err)
	}
	if omitted.Bounds() != explicit.Bounds() {
		t.Errorf("omitted gap composed %v, explicit default composed %v",
			omitted.Bounds(), explicit.Bounds())
	}

	// Zero stays zero: the canvas is DefaultGap px shorter.
	zero, err := Compose(src, sym, Options{Description: "zone B", Gap: intp(0)})
	if err != nil {
		t.Fatalf("Compose(gap=0) error = %v", err)
	}
	if got := omitted.Bounds().Dy() - zero.Bounds().Dy(); got != DefaultGap {
		t.Errorf("gap=0 canvas shorter by %d px, want %d", got, DefaultGap)
	}
}

func TestGapOrDefault(t *testing.T) {
	if got := (Options{}).GapOrDefault(); got != DefaultGap {
		t.Errorf("GapOrDefault() = %d, want %d", got, DefaultGap)
	}
	if got := (Options{Gap: intp(0)}).GapOrDefault(); got != 0 {
		t.Errorf("GapOrDefault() = %d, want explicit 0", got)
	}
	if Digest("ABC", "qr", Options{}) != Digest("ABC", "qr", Options{Gap: intp(DefaultGap)}) {
		t.Error("omitted gap and explicit default digest differently")
	}
}

func TestCache(t *testing.T) {
	c := NewCache(50 * time.Millisecond)
	key := Digest("ABC", "qr", Options{Description: "x"})

	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Set(key, testSymbol(10, 10))
	if _, ok := c.Get(key); !ok {
		t.Fatal("cache miss immediately after Set")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Fatal("cache hit after TTL expiry")
	}
}

func TestDigestDistinguishesRequests(t *testing.T) {
	a := Digest("ABC", "qr", Options{Description: "x"})
	b := Digest("ABC", "code128", Options{Description: "x"})
	c := Digest("ABC", "qr", Options{Description: "y"})

	if a == b || a == c {
		t.Error("digests collide across distinct requests")
	}
	if a != Digest("ABC", "qr", Options{Description: "x"}) {
		t.Error("digest not stable for identical requests")
	}
}
