package templates

import (
	"errors"

	"labelr/internal/engine/compose"
	"labelr/internal/engine/layout"
	"labelr/internal/pkg/validator"
)

// Template is a saved label job: the code and description to encode plus the
// compose options and sheet layout to render them with.
type Template struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	SymbolKind  string          `json:"symbol_kind"`
	Compose     compose.Options `json:"compose"`
	Layout      layout.Params   `json:"layout"`
	Status      string          `json:"status"` // active, archived
	CreatedBy   string          `json:"created_by"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

func ValidateTemplate(t *Template) error {
	if t.Name == "" {
		return errors.New("name is required")
	}
	if len(t.Name) > 120 {
		return errors.New("name exceeds 120 characters")
	}
	if err := validator.ValidateCode(t.Code, t.SymbolKind); err != nil {
		return err
	}
	if err := t.Layout.Validate(); err != nil {
		return err
	}
	return nil
}
