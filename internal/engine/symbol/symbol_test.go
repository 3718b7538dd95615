package symbol

import (
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		data    string
		wantErr bool
	}{
		{
			name:    "Valid QR",
			kind:    KindQR,
			data:    "SKU-00123",
			wantErr: false,
		},
		{
			name:    "Valid Code128",
			kind:    KindCode128,
			data:    "SKU-00123",
			wantErr: false,
		},
		{
			name:    "Empty Data",
			kind:    KindQR,
			data:    "   ",
			wantErr: true,
		},
		{
			name:    "Code128 Non-ASCII",
			kind:    KindCode128,
			data:    "ラベル",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Generate(tt.kind, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("Generate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				b := img.Bounds()
				if b.Dx() == 0 || b.Dy() == 0 {
					t.Errorf("Generate() returned empty image: %v", b)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(""); err != nil || k != KindCode128 {
		t.Errorf("ParseKind(\"\") = %v, %v; want code128 default", k, err)
	}
	if _, err := ParseKind("pdf417"); err == nil {
		t.Error("ParseKind accepted unknown kind")
	}
}
