package parser

import (
	"encoding/json"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// ValidationResult reports whether a text is well-formed JSON.
type ValidationResult struct {
	IsValid bool
	// Error holds the parser's message when IsValid is false
	Error string
	// ParsedValue is set only when IsValid is true
	ParsedValue *models.Value
}

// Validate checks input without ever failing loudly. Only string, []byte and
// json.RawMessage inputs can be valid.
func (p *Parser) Validate(input any) ValidationResult {
	var text string
	switch v := input.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case json.RawMessage:
		text = string(v)
	default:
		return ValidationResult{Error: "input must be a string"}
	}

	value, err := p.ParseString(text)
	if err != nil {
		return ValidationResult{Error: errors.Cause(err).Error()}
	}
	return ValidationResult{IsValid: true, ParsedValue: &value}
}

// Validate checks input using the default options
func Validate(input any) ValidationResult {
	return New(Options{}).Validate(input)
}
