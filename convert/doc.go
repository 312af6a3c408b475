// Package convert turns structured data into CSV, XML and YAML text and
// formats, minifies, validates and parses JSON.
//
// All conversions operate on a Value, a tagged union over null, booleans,
// numbers, strings, sequences and insertion-ordered mappings. Values are
// never modified by a conversion.
//
// Two error policies apply. ToCSV, ToXML, ToYAML, Format, Minify and Decode
// are strict: they return an error matching ErrInvalidArgument,
// ErrInvalidFormat or ErrDepthExceeded (use errors.Is). Validate and Parse
// are lenient: Validate reports problems in its result and Parse returns
// false, logging the reason to the configured logger.
//
//	c := convert.New(convert.WithRootName("order"))
//	v, ok := c.Parse(`{"id": 7, "lines": [{"sku": "A"}, {"sku": "B"}]}`)
//	if !ok {
//		return
//	}
//	xml, err := c.ToXML(v, "")
//	// <order><id>7</id><lines><sku>A</sku></lines><lines><sku>B</sku></lines></order>
package convert
