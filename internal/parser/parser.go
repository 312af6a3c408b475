package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/dataconv/internal/analyzer"
	"github.com/mcncl/dataconv/internal/errors" // Custom errors package
	"github.com/mcncl/dataconv/internal/logging"
	"github.com/mcncl/dataconv/internal/models"
)

// Format names a serialized input format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name, defaulting to JSON when empty
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewInvalidArgumentError(fmt.Sprintf("unknown input format %q", name), nil)
	}
}

// Options configures a Parser
type Options struct {
	// MaxDepth limits container nesting; see analyzer.ResolveMaxDepth
	MaxDepth int
	// Logger receives diagnostics from TryParse. Nil discards them.
	Logger *slog.Logger
}

// Parser decodes serialized text into Structured Values, keeping mapping key order.
type Parser struct {
	maxDepth int
	logger   *slog.Logger
}

// New creates a Parser
func New(opts Options) *Parser {
	return &Parser{
		maxDepth: analyzer.ResolveMaxDepth(opts.MaxDepth),
		logger:   logging.OrDiscard(opts.Logger),
	}
}

// Parse decodes a single JSON value from reader using the default options
func Parse(reader io.Reader) (models.Value, error) {
	return New(Options{}).Parse(reader)
}

// ParseString decodes a single JSON value from a string using the default options
func ParseString(text string) (models.Value, error) {
	return New(Options{}).ParseString(text)
}

// Parse decodes exactly one JSON value from reader. Trailing whitespace is
// allowed; any further value is an error.
func (p *Parser) Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // numbers keep their literal text

	root, err := p.decodeValue(decoder, 0)
	if err != nil {
		if stderrors.Is(err, io.EOF) { // nothing was decoded at all
			return models.Value{}, errors.NewInvalidFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, decodeError(err)
	}

	if _, err := decoder.Token(); !stderrors.Is(err, io.EOF) {
		if err == nil {
			return models.Value{}, errors.NewInvalidFormatError("multiple JSON values found at the root", errors.ErrMultipleValues)
		}
		return models.Value{}, errors.NewInvalidFormatError("invalid trailing data after first JSON value", err)
	}

	return root, nil
}

// ParseString decodes a single JSON value from text
func (p *Parser) ParseString(text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return models.Value{}, errors.NewInvalidFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return p.Parse(strings.NewReader(text))
}

// ParseBytes decodes data in the given format
func (p *Parser) ParseBytes(data []byte, format Format) (models.Value, error) {
	switch format {
	case FormatYAML:
		return p.ParseYAML(data)
	case FormatJSON, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return models.Value{}, errors.NewInvalidFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return p.Parse(bytes.NewReader(data))
	default:
		return models.Value{}, errors.NewInvalidArgumentError(fmt.Sprintf("unknown input format %q", format), nil)
	}
}

// ReadFile reads an input file, rejecting empty paths, missing files and
// empty files with input errors.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return data, nil
}

// TryParse is the lenient counterpart of ParseString: it never fails loudly.
// The boolean is false when no value could be produced, in which case the
// error is logged. A parsed null, false, 0 or "" reports true.
func (p *Parser) TryParse(text string) (models.Value, bool) {
	v, err := p.ParseString(text)
	if err != nil {
		p.logger.Warn("failed to parse JSON", "error", errors.Cause(err).Error())
		return models.Value{}, false
	}
	return v, true
}

func (p *Parser) decodeValue(decoder *json.Decoder, depth int) (models.Value, error) {
	tok, err := decoder.Token()
	if err != nil {
		return models.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth >= p.maxDepth {
			return models.Value{}, errors.NewDepthExceededError(p.maxDepth)
		}
		switch t {
		case '{':
			return p.decodeObject(decoder, depth+1)
		case '[':
			return p.decodeArray(decoder, depth+1)
		}
		return models.Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	case string:
		return models.String(t), nil
	case json.Number:
		return models.Number(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null(), nil
	default:
		return models.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func (p *Parser) decodeObject(decoder *json.Decoder, depth int) (models.Value, error) {
	m := models.NewMapping()
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return models.Value{}, unexpectedEOF(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("expected object key, got %v", keyTok)
		}
		value, err := p.decodeValue(decoder, depth)
		if err != nil {
			return models.Value{}, unexpectedEOF(err)
		}
		m.Set(key, value)
	}
	if err := closeDelim(decoder); err != nil {
		return models.Value{}, err
	}
	return m.Value(), nil
}

func (p *Parser) decodeArray(decoder *json.Decoder, depth int) (models.Value, error) {
	items := make([]models.Value, 0)
	for decoder.More() {
		value, err := p.decodeValue(decoder, depth)
		if err != nil {
			return models.Value{}, unexpectedEOF(err)
		}
		items = append(items, value)
	}
	if err := closeDelim(decoder); err != nil {
		return models.Value{}, err
	}
	return models.Sequence(items...), nil
}

// closeDelim consumes the closing bracket after More reported the end.
func closeDelim(decoder *json.Decoder) error {
	_, err := decoder.Token()
	return unexpectedEOF(err)
}

// unexpectedEOF reports an EOF inside a structure as truncated input.
func unexpectedEOF(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func decodeError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewInvalidFormatError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			err,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewInvalidFormatError("unexpected end of JSON input", err)
	}
	return errors.NewInvalidFormatError("failed to decode JSON", err)
}
