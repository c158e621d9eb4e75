// Package predicate supplies the per-column range capabilities the
// partition filter consults. The scheduler only ever asks "is this key
// value within range" — how a range came to be (predicate analysis,
// constant folding) is someone else's problem.
package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range answers membership-in-range for one partition-key value.
type Range interface {
	Accepts(value string) bool
}

// Interval is a literal range with optional bounds. An empty bound is
// unbounded on that side; bounds are inclusive unless the matching
// exclusive flag is set. Values that parse as numbers on both sides
// compare numerically, everything else lexicographically.
type Interval struct {
	Low           string `yaml:"low"`
	High          string `yaml:"high"`
	LowExclusive  bool   `yaml:"low_exclusive"`
	HighExclusive bool   `yaml:"high_exclusive"`
}

func (r Interval) Accepts(value string) bool {
	if r.Low != "" {
		c := compare(value, r.Low)
		if c < 0 || (c == 0 && r.LowExclusive) {
			return false
		}
	}
	if r.High != "" {
		c := compare(value, r.High)
		if c > 0 || (c == 0 && r.HighExclusive) {
			return false
		}
	}
	return true
}

func (r Interval) String() string {
	lo, hi := "(", ")"
	if !r.LowExclusive {
		lo = "["
	}
	if !r.HighExclusive {
		hi = "]"
	}
	return fmt.Sprintf("%s%s..%s%s", lo, r.Low, r.High, hi)
}

// compare orders two key values, numerically when both parse as numbers.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// ParseSpec decodes a YAML predicate list: one entry per clustering
// column, in column order, with null entries meaning "no restriction on
// this column".
//
//	- low: "2026-01-01"
//	  high: "2026-01-31"
//	- ~
func ParseSpec(data []byte) ([]Range, error) {
	var docs []*Interval
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode predicate spec: %w", err)
	}

	ranges := make([]Range, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue // nil slot: column unconstrained
		}
		ranges[i] = *doc
	}
	return ranges, nil
}
