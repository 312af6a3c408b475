// Package formatter re-serializes JSON with indentation or without any
// insignificant whitespace.
package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mcncl/dataconv/internal/analyzer"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
	"github.com/mcncl/dataconv/internal/parser"
)

const (
	// DefaultIndent is used when Format is given a non-positive indent
	DefaultIndent = 2
	// MaxIndent caps the indent width, as JSON.stringify does
	MaxIndent = 10
)

// Options configures a Formatter
type Options struct {
	// MaxDepth limits container nesting; see analyzer.ResolveMaxDepth
	MaxDepth int
}

// Formatter pretty-prints and minifies JSON. Input may be serialized text
// (string, []byte or json.RawMessage) or a structured value; text is always
// parsed first, so a Go string is never treated as a JSON string value.
type Formatter struct {
	parser   *parser.Parser
	analyzer *analyzer.Analyzer
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return NewFormatterWithOptions(Options{})
}

// NewFormatterWithOptions creates a Formatter with custom options
func NewFormatterWithOptions(opts Options) *Formatter {
	return &Formatter{
		parser:   parser.New(parser.Options{MaxDepth: opts.MaxDepth}),
		analyzer: analyzer.NewAnalyzerWithLimit(opts.MaxDepth),
	}
}

// Format returns input as JSON indented by indent spaces per level. Key
// order is preserved and HTML characters are left unescaped.
func (f *Formatter) Format(input any, indent int) (string, error) {
	data, err := f.compact(input)
	if err != nil {
		return "", err
	}

	if indent <= 0 {
		indent = DefaultIndent
	}
	if indent > MaxIndent {
		indent = MaxIndent
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
		return "", errors.NewInvalidFormatError("failed to indent JSON", err)
	}
	return buf.String(), nil
}

// Minify returns input as JSON with no inserted whitespace
func (f *Formatter) Minify(input any) (string, error) {
	data, err := f.compact(input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *Formatter) compact(input any) ([]byte, error) {
	v, err := f.resolve(input)
	if err != nil {
		return nil, err
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, errors.NewInvalidArgumentError("failed to encode value", err)
	}
	return data, nil
}

// resolve turns input into a Value, parsing text and converting Go values.
func (f *Formatter) resolve(input any) (models.Value, error) {
	switch v := input.(type) {
	case nil:
		return models.Value{}, errors.NewInvalidArgumentError("input must not be null", nil)
	case string:
		return f.parser.ParseString(v)
	case []byte:
		return f.parser.ParseString(string(v))
	case json.RawMessage:
		return f.parser.ParseString(string(v))
	}

	v, err := models.FromGo(input)
	if err != nil {
		return models.Value{}, err
	}
	if v.IsNull() {
		return models.Value{}, errors.NewInvalidArgumentError("input must not be null", nil)
	}
	if err := f.analyzer.CheckDepth(v); err != nil {
		return models.Value{}, err
	}
	return v, nil
}
