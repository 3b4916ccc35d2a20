// Package charts loads preflop strategy charts: for a position and an
// action, the range of hands played and how often. Charts are read from HCL
// documents and never change once loaded.
//
//	chart "button" "raise" {
//	  range = "22+,A2s+,KTs+"
//	  hands = {
//	    "K9o" = 0.7
//	  }
//	}
package charts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerequity/analysis"
)

// ErrChartNotFound is returned when no chart matches a position and action.
var ErrChartNotFound = errors.New("chart not found")

//go:embed default.hcl
var defaultSource []byte

type document struct {
	Charts []chartBlock `hcl:"chart,block"`
}

type chartBlock struct {
	Position    string             `hcl:"position,label"`
	Action      string             `hcl:"action,label"`
	Description string             `hcl:"description,optional"`
	Range       string             `hcl:"range,optional"`
	Hands       map[string]float64 `hcl:"hands,optional"`
}

// Key names a chart.
type Key struct {
	Position string `json:"position"`
	Action   string `json:"action"`
}

func (k Key) String() string {
	return k.Position + "/" + k.Action
}

func newKey(position, action string) Key {
	return Key{
		Position: strings.ToLower(strings.TrimSpace(position)),
		Action:   strings.ToLower(strings.TrimSpace(action)),
	}
}

// Chart is one loaded chart.
type Chart struct {
	Key         Key
	Description string
	rng         *analysis.Range
}

// Charts is a read-only set of charts, safe for concurrent use.
type Charts struct {
	byKey map[Key]Chart
	keys  []Key
}

// Parse decodes an HCL chart document. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Charts, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Charts{byKey: make(map[Key]Chart, len(doc.Charts))}
	for _, block := range doc.Charts {
		key := newKey(block.Position, block.Action)
		if _, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("%s: chart %s defined twice", filename, key)
		}
		r, err := buildRange(block)
		if err != nil {
			return nil, fmt.Errorf("%s: chart %s: %w", filename, key, err)
		}
		c.byKey[key] = Chart{Key: key, Description: block.Description, rng: r}
		c.keys = append(c.keys, key)
	}
	sort.Slice(c.keys, func(i, j int) bool { return c.keys[i].String() < c.keys[j].String() })
	return c, nil
}

func buildRange(block chartBlock) (*analysis.Range, error) {
	r, err := analysis.ParseRange(block.Range)
	if err != nil {
		return nil, err
	}
	mixed, err := analysis.NewRange(block.Hands)
	if err != nil {
		return nil, err
	}
	for _, e := range mixed.Entries() {
		if err := r.Set(e.Notation, e.Weight); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Load reads a chart document from disk.
func Load(path string) (*Charts, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read charts: %w", err)
	}
	return Parse(src, path)
}

var loadDefault = sync.OnceValues(func() (*Charts, error) {
	return Parse(defaultSource, "default.hcl")
})

// Default returns the built-in heads-up charts.
func Default() *Charts {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded charts: %v", err))
	}
	return c
}

// Range returns a copy of the chart's range, so callers may reweight it
// freely.
func (c *Charts) Range(position, action string) (*analysis.Range, error) {
	chart, err := c.Chart(position, action)
	if err != nil {
		return nil, err
	}
	return chart.rng.Clone(), nil
}

// Chart looks a chart up by position and action, case-insensitively.
func (c *Charts) Chart(position, action string) (Chart, error) {
	key := newKey(position, action)
	chart, ok := c.byKey[key]
	if !ok {
		return Chart{}, fmt.Errorf("%w: %s", ErrChartNotFound, key)
	}
	return chart, nil
}

// Keys lists the loaded charts in name order.
func (c *Charts) Keys() []Key {
	return append([]Key(nil), c.keys...)
}

// Range returns a copy of the chart's range.
func (ch Chart) Range() *analysis.Range {
	return ch.rng.Clone()
}

// MinimumDefenseFrequency is the share of a range that must continue
// against a bet so that a pure bluff does not profit: pot / (pot + bet).
// A bet of zero or less needs no defence beyond the whole range.
func MinimumDefenseFrequency(bet, pot float64) float64 {
	if bet <= 0 {
		return 1
	}
	return pot / (pot + bet)
}
