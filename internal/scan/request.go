package scan

import "fmt"

// NodeCount expresses how many execution hosts the caller wants a scan
// spread across. An enumerated request rather than a sentinel integer,
// so precondition checks can't be fooled by a magic constant.
type NodeCount struct {
	kind nodeCountKind
	n    int
}

type nodeCountKind int

const (
	kindExactly nodeCountKind = iota
	kindAllHostsWithData
	kindAllRacks
)

// Exactly requests a concrete number of execution hosts; the
// load-leveling pass merges down to at most n.
func Exactly(n int) NodeCount {
	return NodeCount{kind: kindExactly, n: n}
}

// AllHostsWithData requests one execution host per host holding data.
// The load-leveling pass is skipped entirely.
var AllHostsWithData = NodeCount{kind: kindAllHostsWithData}

// AllRacks is meaningful only to the rack-aware scheduling strategy
// upstream; this scheduler rejects it with ErrAllRacks.
var AllRacks = NodeCount{kind: kindAllRacks}

func (c NodeCount) String() string {
	switch c.kind {
	case kindAllHostsWithData:
		return "all-hosts-with-data"
	case kindAllRacks:
		return "all-racks"
	default:
		return fmt.Sprintf("exactly-%d", c.n)
	}
}
