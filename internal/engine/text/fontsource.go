package text

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Source is the font capability resolved once at startup: a configured TTF
// file when readable, the embedded Go Regular otherwise, and the builtin
// bitmap face as the last resort. Faces for individual point sizes are
// derived from it for the rest of the run.
type Source struct {
	origin string
	sfnt   *opentype.Font // nil when the builtin bitmap face is in use
}

func LoadSource(path string) *Source {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if fnt, perr := opentype.Parse(data); perr == nil {
				return &Source{origin: "file", sfnt: fnt}
			} else {
				log.Warn().Str("path", path).Err(perr).Msg("font file unparseable, falling back to embedded font")
			}
		} else {
			log.Warn().Str("path", path).Err(err).Msg("font file unreadable, falling back to embedded font")
		}
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Error().Err(err).Msg("embedded font unparseable, falling back to builtin bitmap face")
		return &Source{origin: "builtin"}
	}
	return &Source{origin: "embedded", sfnt: fnt}
}

// Origin reports which fallback level the source resolved to.
func (s *Source) Origin() string { return s.origin }

// Face yields a rendering face at the given point size. The builtin face
// ignores size.
func (s *Source) Face(size float64) (font.Face, error) {
	if s.sfnt == nil {
		return basicfont.Face7x13, nil
	}

	face, err := opentype.NewFace(s.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.1fpt: %w", size, err)
	}
	return face, nil
}

// Width measures the advance of s in whole pixels.
func Width(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// LineHeight is the vertical pixel extent of a rendered line.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}
