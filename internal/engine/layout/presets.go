package layout

import "fmt"

// Size is a preset extent in mm.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var LabelPresets = map[string]Size{
	"38x100": {38, 100},
	"50x100": {50, 100},
	"32x64":  {32, 64},
	"18x50":  {18, 50},
	"13x38":  {13, 38},
	"8x20":   {8, 20},
	"38x75":  {38, 75},
	"11x30":  {11, 30},
}

var PaperPresets = map[string]Size{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"4R":     {102, 152},
	"26x15":  {26, 15},
	"33x15":  {33, 15},
	"33x25":  {33, 25},
	"48x33":  {48, 33},
	"60x30":  {60, 30},
	"76x35":  {76, 35},
	"100x50": {100, 50},
}

func LabelPreset(name string) (Size, error) {
	s, ok := LabelPresets[name]
	if !ok {
		return Size{}, fmt.Errorf("unknown label preset %q", name)
	}
	return s, nil
}

func PaperPreset(name string) (Size, error) {
	s, ok := PaperPresets[name]
	if !ok {
		return Size{}, fmt.Errorf("unknown paper preset %q", name)
	}
	return s, nil
}
