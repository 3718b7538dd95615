package validator

import (
	"errors"
	"strings"
)

const maxCodeLength = 256

// ValidateCode checks the free-text code before it reaches a symbol encoder.
// Code 128 only carries ASCII, so non-ASCII input is rejected up front for
// that kind instead of surfacing as an encoder fault.
func ValidateCode(code, kind string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("code is required")
	}

	if len(code) > maxCodeLength {
		return errors.New("code exceeds maximum length of 256 characters")
	}

	if kind == "code128" {
		for _, c := range code {
			if c > 127 {
				return errors.New("code128 data must be ASCII")
			}
		}
	}

	return nil
}
