package convert

import (
	"log/slog"

	"github.com/mcncl/dataconv/internal/converter"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/formatter"
	"github.com/mcncl/dataconv/internal/logging"
	"github.com/mcncl/dataconv/internal/models"
	"github.com/mcncl/dataconv/internal/parser"
)

type (
	// Value is an immutable Structured Value
	Value = models.Value
	// Mapping is an insertion-ordered string-keyed map
	Mapping = models.Mapping
	// Member is a single key/value pair of a Mapping
	Member = models.Member
	// Kind identifies the variant held by a Value
	Kind = models.Kind
	// ValidationResult is returned by Validate
	ValidationResult = parser.ValidationResult
	// KeyCase selects how mapping keys are rewritten
	KeyCase = converter.KeyCase
	// YAMLStyle selects the YAML renderer
	YAMLStyle = converter.YAMLStyle
	// InputFormat names a serialized input format accepted by Decode
	InputFormat = parser.Format
	// Error is the concrete type of every error returned by this package
	Error = errors.AppError
)

const (
	NullKind     = models.NullKind
	BoolKind     = models.BoolKind
	NumberKind   = models.NumberKind
	StringKind   = models.StringKind
	SequenceKind = models.SequenceKind
	MappingKind  = models.MappingKind

	KeyCaseNone       = converter.KeyCaseNone
	KeyCaseSnake      = converter.KeyCaseSnake
	KeyCaseCamel      = converter.KeyCaseCamel
	KeyCaseLowerCamel = converter.KeyCaseLowerCamel
	KeyCaseKebab      = converter.KeyCaseKebab

	YAMLStylePlain  = converter.YAMLStylePlain
	YAMLStyleStrict = converter.YAMLStyleStrict

	JSON = parser.FormatJSON
	YAML = parser.FormatYAML
)

// Error kinds, for use with errors.Is.
var (
	ErrInvalidArgument = errors.ErrInvalidArgument
	ErrInvalidFormat   = errors.ErrInvalidFormat
	ErrDepthExceeded   = errors.ErrDepthExceeded
)

// Value constructors.
var (
	Null       = models.Null
	Bool       = models.Bool
	String     = models.String
	Number     = models.Number
	Int        = models.Int
	Float      = models.Float
	Sequence   = models.Sequence
	Object     = models.Object
	Field      = models.Field
	NewMapping = models.NewMapping
	FromGo     = models.FromGo
)

type options struct {
	rootName   string
	yamlIndent int
	jsonIndent int
	maxDepth   int
	keyCase    KeyCase
	yamlStyle  YAMLStyle
	logger     *slog.Logger
}

// Option configures a Converter
type Option func(*options)

// WithRootName sets the XML root element used when ToXML gets an empty name
func WithRootName(name string) Option {
	return func(o *options) { o.rootName = name }
}

// WithYAMLIndent sets the YAML indent used when ToYAML gets a non-positive indent
func WithYAMLIndent(n int) Option {
	return func(o *options) { o.yamlIndent = n }
}

// WithJSONIndent sets the JSON indent used when Format gets a non-positive indent
func WithJSONIndent(n int) Option {
	return func(o *options) { o.jsonIndent = n }
}

// WithMaxDepth limits container nesting for every operation. Zero keeps the
// default of 1000; a negative value removes the limit.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithKeyCase rewrites mapping keys in CSV headers, XML element names and YAML keys
func WithKeyCase(k KeyCase) Option {
	return func(o *options) { o.keyCase = k }
}

// WithYAMLStyle selects the YAML renderer
func WithYAMLStyle(s YAMLStyle) Option {
	return func(o *options) { o.yamlStyle = s }
}

// WithLogger sets the logger receiving Parse diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Converter is the entry point for every conversion. It is immutable and
// safe for concurrent use.
type Converter struct {
	converter  *converter.Converter
	formatter  *formatter.Formatter
	parser     *parser.Parser
	rootName   string
	yamlIndent int
	jsonIndent int
}

// New creates a Converter
func New(opts ...Option) *Converter {
	o := options{
		rootName:   converter.DefaultRootName,
		yamlIndent: converter.DefaultYAMLIndent,
		jsonIndent: formatter.DefaultIndent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rootName == "" {
		o.rootName = converter.DefaultRootName
	}
	if o.yamlIndent <= 0 {
		o.yamlIndent = converter.DefaultYAMLIndent
	}
	if o.jsonIndent <= 0 {
		o.jsonIndent = formatter.DefaultIndent
	}

	return &Converter{
		converter: converter.NewConverterWithOptions(converter.Options{
			MaxDepth:  o.maxDepth,
			KeyCase:   o.keyCase,
			YAMLStyle: o.yamlStyle,
		}),
		formatter: formatter.NewFormatterWithOptions(formatter.Options{MaxDepth: o.maxDepth}),
		parser: parser.New(parser.Options{
			MaxDepth: o.maxDepth,
			Logger:   logging.OrDiscard(o.logger),
		}),
		rootName:   o.rootName,
		yamlIndent: o.yamlIndent,
		jsonIndent: o.jsonIndent,
	}
}

// ToCSV renders a mapping or a sequence of mappings as CSV
func (c *Converter) ToCSV(v Value) (string, error) {
	return c.converter.ToCSV(v)
}

// ToXML renders v as XML. An empty rootName selects the configured root.
func (c *Converter) ToXML(v Value, rootName string) (string, error) {
	if rootName == "" {
		rootName = c.rootName
	}
	return c.converter.ToXML(v, rootName)
}

// ToYAML renders v as YAML. A non-positive indent selects the configured one.
func (c *Converter) ToYAML(v Value, indent int) (string, error) {
	if indent <= 0 {
		indent = c.yamlIndent
	}
	return c.converter.ToYAML(v, indent)
}

// Format pretty-prints input, which may be JSON text (string or []byte) or a
// structured value. A non-positive indent selects the configured one.
func (c *Converter) Format(input any, indent int) (string, error) {
	if indent <= 0 {
		indent = c.jsonIndent
	}
	return c.formatter.Format(input, indent)
}

// Minify re-serializes input without insignificant whitespace
func (c *Converter) Minify(input any) (string, error) {
	return c.formatter.Minify(input)
}

// Validate reports whether input is well-formed JSON text
func (c *Converter) Validate(input any) ValidationResult {
	return c.parser.Validate(input)
}

// Parse decodes JSON text. It reports false, and logs the cause, when no
// value could be produced.
func (c *Converter) Parse(text string) (Value, bool) {
	return c.parser.TryParse(text)
}

// Decode strictly decodes data in the given format
func (c *Converter) Decode(data []byte, format InputFormat) (Value, error) {
	return c.parser.ParseBytes(data, format)
}
