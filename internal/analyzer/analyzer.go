// Package analyzer inspects Structured Values before conversion: it derives
// CSV tables from row mappings and enforces the nesting limit.
package analyzer

import (
	"fmt"
	"math"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// DefaultMaxDepth is the container nesting limit used when none is configured.
const DefaultMaxDepth = 1000

// ResolveMaxDepth maps a configured limit to an effective one: zero selects
// DefaultMaxDepth and negative values disable the limit.
func ResolveMaxDepth(limit int) int {
	switch {
	case limit == 0:
		return DefaultMaxDepth
	case limit < 0:
		return math.MaxInt
	default:
		return limit
	}
}

// Table is the tabular view of a mapping or sequence of mappings.
type Table struct {
	// Headers is the union of row keys in first-seen order
	Headers []string
	Rows    []*models.Mapping
}

// Analyzer validates value shapes for the converters
type Analyzer struct {
	maxDepth int
}

// NewAnalyzerWithLimit creates an Analyzer with a custom depth limit,
// resolved through ResolveMaxDepth.
func NewAnalyzerWithLimit(limit int) *Analyzer {
	return &Analyzer{maxDepth: ResolveMaxDepth(limit)}
}

// AnalyzeTable turns a single mapping or a sequence of mappings into a Table.
// A null value or any other shape is rejected with an invalid argument error.
func (a *Analyzer) AnalyzeTable(v models.Value) (Table, error) {
	var rows []models.Value
	switch v.Kind() {
	case models.NullKind:
		return Table{}, errors.NewInvalidArgumentError("input must not be null", nil)
	case models.MappingKind:
		rows = []models.Value{v}
	case models.SequenceKind:
		rows = v.Items()
	default:
		return Table{}, errors.NewInvalidArgumentError(
			fmt.Sprintf("expected a mapping or a sequence of mappings, got %s", v.Kind()), nil)
	}

	if err := a.CheckDepth(v); err != nil {
		return Table{}, err
	}

	table := Table{
		Headers: make([]string, 0),
		Rows:    make([]*models.Mapping, 0, len(rows)),
	}
	seen := make(map[string]struct{})
	for i, row := range rows {
		if row.Kind() != models.MappingKind {
			return Table{}, errors.NewInvalidArgumentError(
				fmt.Sprintf("row %d is a %s, expected a mapping", i, row.Kind()), nil)
		}
		m := row.Mapping()
		for _, key := range m.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			table.Headers = append(table.Headers, key)
		}
		table.Rows = append(table.Rows, m)
	}
	return table, nil
}

// CheckDepth fails with a depth exceeded error when v nests containers
// deeper than the configured limit. The walk stops at the limit, so the
// check itself is bounded.
func (a *Analyzer) CheckDepth(v models.Value) error {
	return a.checkDepth(v, 0)
}

func (a *Analyzer) checkDepth(v models.Value, depth int) error {
	if !v.IsContainer() {
		return nil
	}
	if depth >= a.maxDepth {
		return errors.NewDepthExceededError(a.maxDepth)
	}
	switch v.Kind() {
	case models.SequenceKind:
		for _, item := range v.Items() {
			if err := a.checkDepth(item, depth+1); err != nil {
				return err
			}
		}
	case models.MappingKind:
		for _, member := range v.Members() {
			if err := a.checkDepth(member.Value, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
