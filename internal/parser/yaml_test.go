package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

func TestParseYAML_OrderedMapping(t *testing.T) {
	input := `
zeta: 1
alpha:
  name: widget
  price: 2.5
  tags:
    - a
    - b
enabled: true
missing: null
`
	root, err := New(Options{}).ParseYAML([]byte(input))
	require.NoError(t, err)

	require.Equal(t, models.MappingKind, root.Kind())
	assert.Equal(t, []string{"zeta", "alpha", "enabled", "missing"}, root.Mapping().Keys())
	assert.Equal(t, `{"zeta":1,"alpha":{"name":"widget","price":2.5,"tags":["a","b"]},"enabled":true,"missing":null}`, root.Text())
}

func TestParseYAML_NonStringKeys(t *testing.T) {
	root, err := New(Options{}).ParseYAML([]byte("1: one\ntrue: yes\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "true"}, root.Mapping().Keys())
}

func TestParseYAML_TopLevelSequence(t *testing.T) {
	root, err := New(Options{}).ParseYAML([]byte("- name: a\n- name: b\n"))
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"a"},{"name":"b"}]`, root.Text())
}

func TestParseYAML_Errors(t *testing.T) {
	p := New(Options{MaxDepth: 2})

	_, err := p.ParseYAML([]byte("  \n"))
	assert.ErrorIs(t, err, errors.ErrEmptyInput)

	_, err = p.ParseYAML([]byte("a: [1, 2\n"))
	assert.ErrorIs(t, err, errors.ErrInvalidFormat)

	_, err = p.ParseYAML([]byte("a:\n  b:\n    c: 1\n"))
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
}

func TestParseBytes_DispatchesOnFormat(t *testing.T) {
	p := New(Options{})

	fromJSON, err := p.ParseBytes([]byte(`{"a":[1,2]}`), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := p.ParseBytes([]byte("a:\n  - 1\n  - 2\n"), FormatYAML)
	require.NoError(t, err)

	assert.True(t, fromJSON.Equal(fromYAML))
}
