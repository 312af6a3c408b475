package e2e_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dataconv/convert"
)

func readSample(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "samples", name))
	require.NoError(t, err)
	return data
}

// TestE2E_YAMLToJSONRoundTrip decodes YAML, minifies to JSON and decodes
// that JSON again, expecting the same value in the same key order.
func TestE2E_YAMLToJSONRoundTrip(t *testing.T) {
	c := convert.New()

	fromYAML, err := c.Decode(readSample(t, "service.yaml"), convert.YAML)
	require.NoError(t, err)

	compact, err := c.Minify(fromYAML)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"billing","replicas":3,"enabled":true,"ports":[80,443],"owner":{"team":"payments & risk","contact":null}}`,
		compact)

	fromJSON, ok := c.Parse(compact)
	require.True(t, ok)
	assert.True(t, fromYAML.Equal(fromJSON))
	assert.Equal(t, fromYAML.Mapping().Keys(), fromJSON.Mapping().Keys())
}

// TestE2E_AllOutputsFromOneValue renders every output format from the
// orders sample.
func TestE2E_AllOutputsFromOneValue(t *testing.T) {
	c := convert.New(convert.WithRootName("order"))

	orders, err := c.Decode(readSample(t, "orders.json"), convert.JSON)
	require.NoError(t, err)

	csv, err := c.ToCSV(orders)
	require.NoError(t, err)
	assert.Equal(t, "id,customer,total,items,note", strings.SplitN(csv, "\n", 2)[0])
	assert.Len(t, strings.Split(csv, "\n"), 3)

	xml, err := c.ToXML(orders, "")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(xml, "<order>"))
	assert.Contains(t, xml, "<customer>Bo &quot;B&quot; Ng</customer>")
	assert.Contains(t, xml, "<items>pen</items><items>ink</items>")

	yaml, err := c.ToYAML(orders, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(yaml, "- id: 1\n  customer: Ann Lee\n  total: 19.90\n  items:\n    - pen\n"), yaml)

	pretty, err := c.Format(orders, 0)
	require.NoError(t, err)
	result := c.Validate(pretty)
	require.True(t, result.IsValid, result.Error)
	assert.True(t, orders.Equal(*result.ParsedValue))
}

// TestE2E_StrictYAMLReadsBack checks that strict YAML output decodes to the
// value it was produced from.
func TestE2E_StrictYAMLReadsBack(t *testing.T) {
	c := convert.New(convert.WithYAMLStyle(convert.YAMLStyleStrict))

	original, ok := c.Parse(`{"code": "007", "flag": "yes", "empty": "", "nested": {"list": [], "n": 1.5}}`)
	require.True(t, ok)

	out, err := c.ToYAML(original, 0)
	require.NoError(t, err)

	back, err := c.Decode([]byte(out), convert.YAML)
	require.NoError(t, err)
	assert.Equal(t, original.Mapping().Keys(), back.Mapping().Keys())

	code, _ := back.Mapping().Get("code")
	assert.Equal(t, convert.StringKind, code.Kind())
	assert.Equal(t, "007", code.StringValue())
}

// TestE2E_ConcurrentUse shares one Converter across goroutines
func TestE2E_ConcurrentUse(t *testing.T) {
	c := convert.New()
	orders, err := c.Decode(readSample(t, "orders.json"), convert.JSON)
	require.NoError(t, err)

	want, err := c.ToCSV(orders)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.ToCSV(orders)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent ToCSV: %v", err)
	}
}
