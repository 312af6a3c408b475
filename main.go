package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/dataconv/convert"
	"github.com/mcncl/dataconv/internal/config"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/logging"
	"github.com/mcncl/dataconv/internal/parser"
)

// Version information
const (
	Version = "0.1.0"
)

// CLI defines the command-line interface
var CLI struct {
	Config   string           `help:"Path to a config file. Defaults to .dataconv.yml in the current or a parent directory." short:"c" type:"path"`
	Debug    bool             `help:"Enable debug logging." short:"d"`
	MaxDepth int              `help:"Maximum nesting depth; negative disables the limit." name:"max-depth"`
	KeyCase  string           `help:"Rewrite keys: none, snake, camel, lower_camel or kebab." name:"key-case"`
	Version  kong.VersionFlag `help:"Show version information." short:"v"`

	CSV      CSVCmd      `cmd:"" name:"csv" help:"Convert a mapping or a sequence of mappings to CSV."`
	XML      XMLCmd      `cmd:"" name:"xml" help:"Convert input to XML."`
	YAML     YAMLCmd     `cmd:"" name:"yaml" help:"Convert input to YAML."`
	Format   FormatCmd   `cmd:"" help:"Pretty-print input as JSON."`
	Minify   MinifyCmd   `cmd:"" help:"Print input as compact JSON."`
	Validate ValidateCmd `cmd:"" help:"Check that input is valid JSON."`
}

// Context holds the runtime context shared by every command
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// IOFlags are the input and output flags common to the conversion commands
type IOFlags struct {
	Input  string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	From   string `help:"Input format: json or yaml. Defaults to the configured format."`
}

// CSVCmd converts input to CSV
type CSVCmd struct {
	IOFlags
}

// Run executes the csv command
func (cmd *CSVCmd) Run(ctx *Context) error {
	c := newConverter(ctx)
	v, err := cmd.decode(ctx, c)
	if err != nil {
		return err
	}
	out, err := c.ToCSV(v)
	if err != nil {
		return err
	}
	return writeOutput(ctx, cmd.Output, out)
}

// XMLCmd converts input to XML
type XMLCmd struct {
	IOFlags
	Root string `help:"Name of the root element." short:"r"`
}

// Run executes the xml command
func (cmd *XMLCmd) Run(ctx *Context) error {
	c := newConverter(ctx)
	v, err := cmd.decode(ctx, c)
	if err != nil {
		return err
	}
	out, err := c.ToXML(v, cmd.Root)
	if err != nil {
		return err
	}
	return writeOutput(ctx, cmd.Output, out)
}

// YAMLCmd converts input to YAML
type YAMLCmd struct {
	IOFlags
	Indent int  `help:"Spaces per indent level." short:"n"`
	Strict bool `help:"Quote scalars where needed so the output is valid YAML."`
}

// Run executes the yaml command
func (cmd *YAMLCmd) Run(ctx *Context) error {
	opts := converterOptions(ctx)
	if cmd.Strict {
		opts = append(opts, convert.WithYAMLStyle(convert.YAMLStyleStrict))
	}
	c := convert.New(opts...)
	v, err := cmd.decode(ctx, c)
	if err != nil {
		return err
	}
	out, err := c.ToYAML(v, cmd.Indent)
	if err != nil {
		return err
	}
	return writeOutput(ctx, cmd.Output, out)
}

// FormatCmd pretty-prints JSON
type FormatCmd struct {
	IOFlags
	Indent int `help:"Spaces per indent level (at most 10)." short:"n"`
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	c := newConverter(ctx)
	input, err := cmd.formatInput(ctx, c)
	if err != nil {
		return err
	}
	out, err := c.Format(input, cmd.Indent)
	if err != nil {
		return err
	}
	return writeOutput(ctx, cmd.Output, out)
}

// MinifyCmd prints compact JSON
type MinifyCmd struct {
	IOFlags
}

// Run executes the minify command
func (cmd *MinifyCmd) Run(ctx *Context) error {
	c := newConverter(ctx)
	input, err := cmd.formatInput(ctx, c)
	if err != nil {
		return err
	}
	out, err := c.Minify(input)
	if err != nil {
		return err
	}
	return writeOutput(ctx, cmd.Output, out)
}

// ValidateCmd checks JSON input
type ValidateCmd struct {
	Input string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Quiet bool   `help:"Print nothing; report through the exit status only." short:"q"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	data, err := readInput(ctx, cmd.Input)
	if err != nil {
		return err
	}
	result := newConverter(ctx).Validate(data)
	if !result.IsValid {
		return errors.NewInvalidFormatError("input is not valid JSON", fmt.Errorf("%s", result.Error))
	}
	if cmd.Quiet {
		return nil
	}
	_, err = fmt.Fprintf(ctx.Stdout, "valid JSON (%s)\n", result.ParsedValue.Kind())
	return err
}

func main() {
	app, err := newParser()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	kctx, err := app.Parse(os.Args[1:])
	app.FatalIfErrorf(err)

	ctx, err := newContext(os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		ctx.Logger.Debug("running command", "command", kctx.Command())
		err = kctx.Run(ctx)
	}
	if err != nil {
		printError(os.Stderr, err)
		fmt.Fprintf(os.Stderr, "\nFor help, run: dataconv --help\n")
		os.Exit(1)
	}
}

func newParser() (*kong.Kong, error) {
	return kong.New(&CLI,
		kong.Name("dataconv"),
		kong.Description("Convert JSON or YAML data to CSV, XML and YAML, and format, minify or validate JSON."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)
}

// newContext loads the configuration with the global flags applied on top
func newContext(stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, &config.Config{
		Limits: config.LimitsConfig{MaxDepth: CLI.MaxDepth},
		Naming: config.NamingConfig{KeyCase: CLI.KeyCase},
		Dev:    config.DevConfig{Debug: CLI.Debug},
	})
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	logger := logging.New(stderr, cfg.Dev.Debug)
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	return &Context{
		Config: cfg,
		Logger: logger,
		Stdin:  stdin,
		Stdout: stdout,
	}, nil
}

func converterOptions(ctx *Context) []convert.Option {
	cfg := ctx.Config
	opts := []convert.Option{
		convert.WithRootName(cfg.XML.RootName),
		convert.WithYAMLIndent(cfg.YAML.Indent),
		convert.WithJSONIndent(cfg.JSON.Indent),
		convert.WithMaxDepth(cfg.Limits.MaxDepth),
		convert.WithLogger(ctx.Logger),
	}
	// both were checked by config.Validate
	if convOpts, err := cfg.ConverterOptions(); err == nil {
		opts = append(opts,
			convert.WithKeyCase(convOpts.KeyCase),
			convert.WithYAMLStyle(convOpts.YAMLStyle),
		)
	}
	return opts
}

func newConverter(ctx *Context) *convert.Converter {
	return convert.New(converterOptions(ctx)...)
}

func (f *IOFlags) format(ctx *Context) (parser.Format, error) {
	if f.From != "" {
		return parser.ParseFormat(f.From)
	}
	return ctx.Config.InputFormat()
}

func (f *IOFlags) decode(ctx *Context, c *convert.Converter) (convert.Value, error) {
	format, err := f.format(ctx)
	if err != nil {
		return convert.Value{}, err
	}
	data, err := readInput(ctx, f.Input)
	if err != nil {
		return convert.Value{}, err
	}
	ctx.Logger.Debug("decoding input", "format", format, "bytes", len(data))
	return c.Decode(data, format)
}

// formatInput returns JSON text untouched so Format parses it itself, and
// decodes any other format into a value.
func (f *IOFlags) formatInput(ctx *Context, c *convert.Converter) (any, error) {
	format, err := f.format(ctx)
	if err != nil {
		return nil, err
	}
	if format == parser.FormatJSON {
		return readInput(ctx, f.Input)
	}
	return f.decode(ctx, c)
}

// readInput reads from the named file, or from stdin when path is empty
func readInput(ctx *Context, path string) ([]byte, error) {
	if path != "" {
		return parser.ReadFile(path)
	}

	// an interactive terminal has nothing piped in
	if f, ok := ctx.Stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return data, nil
}

// writeOutput writes text to the named file, or to stdout when path is empty
func writeOutput(ctx *Context, path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		ctx.Logger.Debug("wrote output", "path", path, "bytes", len(text))
		return nil
	}

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// printError writes a user-friendly message, in red when w is a terminal
func printError(w io.Writer, err error) {
	msg := errors.UserFriendlyError(err)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c := color.New(color.FgRed, color.Bold)
		c.EnableColor()
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}
