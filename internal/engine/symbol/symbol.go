package symbol

import (
	"errors"
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"

	"labelr/internal/pkg/validator"
)

// Kind selects which symbology encodes the code string.
type Kind string

const (
	KindQR      Kind = "qr"
	KindCode128 Kind = "code128"

	qrModulePx     = 512
	code128WidthPx = 400
	code128Height  = 160
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindQR, KindCode128:
		return Kind(s), nil
	case "":
		return KindCode128, nil
	default:
		return "", fmt.Errorf("unknown symbol kind %q", s)
	}
}

// Generate encodes data into a raster symbol image. The caller is expected to
// have a non-empty code; the check here is a backstop for direct engine use.
func Generate(kind Kind, data string) (image.Image, error) {
	if err := validator.ValidateCode(data, string(kind)); err != nil {
		return nil, err
	}

	switch kind {
	case KindQR:
		return generateQR(data)
	case KindCode128:
		return generateCode128(data)
	default:
		return nil, errors.New("unsupported symbol kind")
	}
}

func generateQR(data string) (image.Image, error) {
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	qr.DisableBorder = false
	return qr.Image(qrModulePx), nil
}

func generateCode128(data string) (image.Image, error) {
	bc, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}

	scaled, err := barcode.Scale(bc, code128WidthPx, code128Height)
	if err != nil {
		return nil, fmt.Errorf("scale code128: %w", err)
	}
	return scaled, nil
}
