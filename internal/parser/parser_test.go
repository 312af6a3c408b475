package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/google/go-cmp/cmp"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/logging"
	"github.com/mcncl/dataconv/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if root.Kind() != models.MappingKind {
		t.Fatalf("Parse() root kind = %s, want mapping", root.Kind())
	}

	want := `{"name":"John Doe","age":30,"isStudent":false,"city":null}`
	if diff := cmp.Diff(want, root.Text()); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	root, err := ParseString(`{"zeta": 1, "alpha": {"y": 1, "b": 2}, "mid": 3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, root.Mapping().Keys()); diff != "" {
		t.Errorf("top-level keys mismatch (-want +got):\n%s", diff)
	}
	inner, _ := root.Mapping().Get("alpha")
	if diff := cmp.Diff([]string{"y", "b"}, inner.Mapping().Keys()); diff != "" {
		t.Errorf("nested keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if root.Kind() != models.SequenceKind {
		t.Fatalf("Parse() root kind = %s, want sequence", root.Kind())
	}
	if diff := cmp.Diff(`[1,"test",true,null,3.14]`, root.Text()); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NumberLiteralsKept(t *testing.T) {
	root, err := ParseString(`[1.50, 1e3, -0]`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if diff := cmp.Diff(`[1.50,1e3,-0]`, root.Text()); diff != "" {
		t.Errorf("number literals changed (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateKeysLastWins(t *testing.T) {
	root, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if diff := cmp.Diff(`{"a":3,"b":2}`, root.Text()); diff != "" {
		t.Errorf("duplicate keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := Parse(strings.NewReader(input))
		if err == nil {
			t.Errorf("Parse(%q) err = nil, want error", input)
			continue
		}
		if !stderrors.Is(err, errors.ErrEmptyInput) || !stderrors.Is(err, errors.ErrInvalidFormat) {
			t.Errorf("Parse(%q) err = %v, want empty input invalid format error", input, err)
		}
	}

	_, err := ParseString("   ")
	if !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Errorf("ParseString() with whitespace string, err = %v, want ErrEmptyInput", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing closing brace", `{"name": "John Doe", "age": 30`},
		{"missing closing bracket", `["item1", "item2",`},
		{"bad literal", `not json`},
		{"missing comma", `{"a": 1 "b": 2}`},
		{"truncated literal", `[tru`},
		{"non-string key", `{1: 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) err = nil, want error", tt.input)
			}
			if !stderrors.Is(err, errors.ErrInvalidFormat) {
				t.Errorf("ParseString(%q) err = %v, want invalid format", tt.input, err)
			}
			if errors.Cause(err).Error() == "" {
				t.Errorf("ParseString(%q) cause has empty message", tt.input)
			}
		})
	}
}

func TestParse_TrailingData(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	if !stderrors.Is(err, errors.ErrMultipleValues) {
		t.Errorf("ParseString() err = %v, want ErrMultipleValues", err)
	}

	_, err = ParseString(`[1] ]`)
	if !stderrors.Is(err, errors.ErrInvalidFormat) {
		t.Errorf("ParseString() err = %v, want invalid format", err)
	}

	if _, err := ParseString("{\"a\": 1}\n\n  "); err != nil {
		t.Errorf("ParseString() with trailing whitespace err = %v, want nil", err)
	}
}

func TestParse_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name     string
		jsonStr  string
		wantKind models.Kind
		wantText string
	}{
		{"RootString", `"hello world"`, models.StringKind, "hello world"},
		{"RootNumber", `123.45`, models.NumberKind, "123.45"},
		{"RootBooleanTrue", `true`, models.BoolKind, "true"},
		{"RootBooleanFalse", `false`, models.BoolKind, "false"},
		{"RootNull", `null`, models.NullKind, "null"},
		{"RootEmptyString", `""`, models.StringKind, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tc.jsonStr))
			if err != nil {
				t.Fatalf("Parse() error = %v, wantErr nil for %s", err, tc.name)
			}
			if root.Kind() != tc.wantKind {
				t.Errorf("Parse() kind = %s, want %s", root.Kind(), tc.wantKind)
			}
			if root.Text() != tc.wantText {
				t.Errorf("Parse() text = %q, want %q", root.Text(), tc.wantText)
			}
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	p := New(Options{MaxDepth: 3})

	if _, err := p.ParseString(`[[[1]]]`); err != nil {
		t.Errorf("ParseString() at limit err = %v, want nil", err)
	}

	_, err := p.ParseString(`[[[[1]]]]`)
	if !stderrors.Is(err, errors.ErrDepthExceeded) {
		t.Errorf("ParseString() beyond limit err = %v, want ErrDepthExceeded", err)
	}

	_, err = p.ParseString(`{"a": {"b": {"c": {"d": 1}}}}`)
	if !stderrors.Is(err, errors.ErrDepthExceeded) {
		t.Errorf("ParseString() nested objects err = %v, want ErrDepthExceeded", err)
	}
}

func TestParse_DefaultDepthLimit(t *testing.T) {
	deep := strings.Repeat("[", 1001) + strings.Repeat("]", 1001)
	_, err := ParseString(deep)
	if !stderrors.Is(err, errors.ErrDepthExceeded) {
		t.Errorf("ParseString() err = %v, want ErrDepthExceeded", err)
	}
}

func TestReadFile_ThenParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.json")
	if err := os.WriteFile(path, []byte(`{"product": "Laptop", "price": 1200.50}`), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v, wantErr nil", err)
	}
	root, err := New(Options{}).ParseBytes(data, FormatJSON)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v, wantErr nil", err)
	}
	if diff := cmp.Diff(`{"product":"Laptop","price":1200.50}`, root.Text()); diff != "" {
		t.Errorf("ParseBytes() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFile_Errors(t *testing.T) {
	emptyFile := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(emptyFile, nil, 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"empty path", "", errors.ErrInvalidFilePath},
		{"blank path", "   ", errors.ErrInvalidFilePath},
		{"missing file", filepath.Join(t.TempDir(), "nonexistent.json"), errors.ErrFileNotFound},
		{"empty file", emptyFile, errors.ErrFileEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if !stderrors.Is(err, tt.target) {
				t.Errorf("ReadFile(%q) err = %v, want %v", tt.path, err, tt.target)
			}
			if msg := errors.UserFriendlyError(err); !strings.HasPrefix(msg, "Input error: ") {
				t.Errorf("ReadFile(%q) message = %q, want an input error", tt.path, msg)
			}
			if data != nil {
				t.Errorf("ReadFile(%q) data = %q, want nil", tt.path, data)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", name, got, err, want)
		}
	}

	if _, err := ParseFormat("toml"); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("ParseFormat(toml) err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseBytes_UnknownFormat(t *testing.T) {
	_, err := New(Options{}).ParseBytes([]byte(`{}`), Format("xml"))
	if !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("ParseBytes() err = %v, want ErrInvalidArgument", err)
	}
}

func TestTryParse(t *testing.T) {
	var logs bytes.Buffer
	p := New(Options{Logger: logging.New(&logs, false)})

	v, ok := p.TryParse(`false`)
	if !ok {
		t.Fatalf("TryParse(false) ok = false, want true")
	}
	if v.Kind() != models.BoolKind || v.BoolValue() {
		t.Errorf("TryParse(false) = %s, want false", v.Text())
	}
	if logs.Len() != 0 {
		t.Errorf("TryParse() logged on success: %s", logs.String())
	}

	v, ok = p.TryParse(`null`)
	if !ok || !v.IsNull() {
		t.Errorf("TryParse(null) = %s, %v; want null, true", v.Text(), ok)
	}

	_, ok = p.TryParse(`{broken`)
	if ok {
		t.Errorf("TryParse({broken) ok = true, want false")
	}
	if !strings.Contains(logs.String(), "failed to parse JSON") {
		t.Errorf("TryParse() did not log the failure, logs = %q", logs.String())
	}
}
