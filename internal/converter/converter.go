// Package converter renders Structured Values as CSV, XML and YAML text.
package converter

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/dataconv/internal/analyzer"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

const (
	// DefaultRootName is the XML root element used when none is given
	DefaultRootName = "root"
	// DefaultYAMLIndent is the YAML indent width used when none is given
	DefaultYAMLIndent = 2
)

// KeyCase selects how mapping keys are rewritten before rendering.
type KeyCase string

const (
	KeyCaseNone       KeyCase = "none"
	KeyCaseSnake      KeyCase = "snake"
	KeyCaseCamel      KeyCase = "camel"
	KeyCaseLowerCamel KeyCase = "lower_camel"
	KeyCaseKebab      KeyCase = "kebab"
)

// ParseKeyCase resolves a key case name; the empty string means none.
func ParseKeyCase(name string) (KeyCase, error) {
	switch KeyCase(strings.ToLower(strings.TrimSpace(name))) {
	case "", KeyCaseNone:
		return KeyCaseNone, nil
	case KeyCaseSnake:
		return KeyCaseSnake, nil
	case KeyCaseCamel:
		return KeyCaseCamel, nil
	case KeyCaseLowerCamel, "lowercamel":
		return KeyCaseLowerCamel, nil
	case KeyCaseKebab:
		return KeyCaseKebab, nil
	default:
		return "", errors.NewInvalidArgumentError(fmt.Sprintf("unknown key case %q", name), nil)
	}
}

// Apply rewrites key
func (k KeyCase) Apply(key string) string {
	switch k {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// YAMLStyle selects the YAML renderer.
type YAMLStyle string

const (
	// YAMLStylePlain emits values by plain string coercion with no quoting
	YAMLStylePlain YAMLStyle = "plain"
	// YAMLStyleStrict emits valid, correctly quoted YAML through gopkg.in/yaml.v3
	YAMLStyleStrict YAMLStyle = "strict"
)

// ParseYAMLStyle resolves a style name; the empty string means plain.
func ParseYAMLStyle(name string) (YAMLStyle, error) {
	switch YAMLStyle(strings.ToLower(strings.TrimSpace(name))) {
	case "", YAMLStylePlain:
		return YAMLStylePlain, nil
	case YAMLStyleStrict:
		return YAMLStyleStrict, nil
	default:
		return "", errors.NewInvalidArgumentError(fmt.Sprintf("unknown YAML style %q", name), nil)
	}
}

// Options configures a Converter
type Options struct {
	// MaxDepth limits container nesting; see analyzer.ResolveMaxDepth
	MaxDepth  int
	KeyCase   KeyCase
	YAMLStyle YAMLStyle
}

// Converter renders Structured Values. It holds no mutable state and is
// safe for concurrent use.
type Converter struct {
	analyzer  *analyzer.Analyzer
	keyCase   KeyCase
	yamlStyle YAMLStyle
}

// NewConverter creates a Converter with default options
func NewConverter() *Converter {
	return NewConverterWithOptions(Options{})
}

// NewConverterWithOptions creates a Converter with custom options
func NewConverterWithOptions(opts Options) *Converter {
	keyCase := opts.KeyCase
	if keyCase == "" {
		keyCase = KeyCaseNone
	}
	style := opts.YAMLStyle
	if style == "" {
		style = YAMLStylePlain
	}
	return &Converter{
		analyzer:  analyzer.NewAnalyzerWithLimit(opts.MaxDepth),
		keyCase:   keyCase,
		yamlStyle: style,
	}
}

// prepare rejects null input, enforces the depth limit and applies the key case.
func (c *Converter) prepare(v models.Value) (models.Value, error) {
	if v.IsNull() {
		return models.Value{}, errors.NewInvalidArgumentError("input must not be null", nil)
	}
	if err := c.analyzer.CheckDepth(v); err != nil {
		return models.Value{}, err
	}
	if c.keyCase == KeyCaseNone {
		return v, nil
	}
	return renameKeys(v, c.keyCase), nil
}

// renameKeys returns a copy of v with every mapping key rewritten. Keys that
// collide after rewriting merge: first position, last value.
func renameKeys(v models.Value, keyCase KeyCase) models.Value {
	switch v.Kind() {
	case models.SequenceKind:
		items := make([]models.Value, v.Len())
		for i, item := range v.Items() {
			items[i] = renameKeys(item, keyCase)
		}
		return models.Sequence(items...)
	case models.MappingKind:
		m := models.NewMapping()
		for _, member := range v.Members() {
			m.Set(keyCase.Apply(member.Key), renameKeys(member.Value, keyCase))
		}
		return m.Value()
	default:
		return v
	}
}
