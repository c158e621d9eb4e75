package scan

import (
	"fmt"
	"log/slog"

	"github.com/quarrydb/quarry/internal/catalog"
	"github.com/quarrydb/quarry/internal/logging"
	"github.com/quarrydb/quarry/internal/plan"
	"github.com/quarrydb/quarry/internal/predicate"
)

// RowScanNode is the scheduling side of the row-store access path. The
// row store exposes no block replica placement, so there is no locality
// to preserve: active partitions are dealt round-robin across the
// configured scan hosts.
type RowScanNode struct {
	id     int
	tbl    *catalog.Table
	hosts  []string
	active []*catalog.Partition
	log    *slog.Logger
}

var _ Node = (*RowScanNode)(nil)

// NewRowScanNode creates a row-store scan node over a fixed host list.
func NewRowScanNode(id int, tbl *catalog.Table, hosts []string) *RowScanNode {
	return &RowScanNode{
		id:    id,
		tbl:   tbl,
		hosts: hosts,
		log:   logging.Component("rowscan").With("table", tbl.Name, "node_id", id),
	}
}

// Finalize shares the column-store partition filter; pruning is
// identical on both access paths.
func (s *RowScanNode) Finalize(preds []predicate.Range) error {
	active, err := filterPartitions(s.tbl, preds)
	if err != nil {
		return err
	}
	s.active = active
	s.log.Debug("finalized scan", "partitions_active", len(active))
	return nil
}

// ComputeUnits deals active partitions round-robin across the host
// list, capped at the requested node count. Hosts that receive no
// partitions emit no unit.
func (s *RowScanNode) ComputeUnits(count NodeCount) ([]plan.ScanUnit, []string, error) {
	switch count.kind {
	case kindAllRacks:
		return nil, nil, ErrAllRacks
	case kindExactly:
		if count.n <= 0 {
			return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidNodeCount, count.n)
		}
	}

	hosts := s.hosts
	if count.kind == kindExactly && count.n < len(hosts) {
		hosts = hosts[:count.n]
	}
	if len(hosts) == 0 || len(s.active) == 0 {
		return nil, nil, nil
	}

	ranges := make([][]plan.FileRange, len(hosts))
	for i, p := range s.active {
		slot := i % len(hosts)
		for _, b := range p.Blocks {
			ranges[slot] = append(ranges[slot], plan.FileRange{
				Path:        b.Path,
				Offset:      b.Offset,
				Length:      b.Length,
				PartitionID: b.PartitionID,
			})
		}
	}

	var units []plan.ScanUnit
	var unitHosts []string
	for i, rs := range ranges {
		if len(rs) == 0 {
			continue
		}
		units = append(units, plan.ScanUnit{NodeID: s.id, Ranges: rs})
		unitHosts = append(unitHosts, hosts[i])
	}

	s.log.Debug("computed scan units", "request", count.String(), "units", len(units))
	return units, unitHosts, nil
}
