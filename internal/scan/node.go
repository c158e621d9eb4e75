// Package scan decides which host executes which piece of a table's
// data and packages that decision into per-host units of work. It is a
// compile-time planning step: synchronous, side-effect-free, and
// recomputed from scratch on every placement request.
package scan

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/quarrydb/quarry/internal/catalog"
	"github.com/quarrydb/quarry/internal/logging"
	"github.com/quarrydb/quarry/internal/metrics"
	"github.com/quarrydb/quarry/internal/plan"
	"github.com/quarrydb/quarry/internal/predicate"
)

// Node is the planner's capability for one table access path.
type Node interface {
	// Finalize computes and caches the active partition set from the
	// supplied per-column range predicates. The cached set is read-only
	// afterwards and shared by every ComputeUnits call.
	Finalize(preds []predicate.Range) error

	// ComputeUnits assigns the active data to execution hosts and
	// returns one unit of work per surviving host plus the
	// index-aligned host list. Each call is independent; callers may
	// ask for a different node count every time.
	ComputeUnits(count NodeCount) ([]plan.ScanUnit, []string, error)
}

// TableScanNode schedules scans of block-replicated column-store
// tables. Placement is a two-phase heuristic: a locality-preserving
// greedy assignment over each block's replica hosts, then an optional
// load-leveling merge down to the requested node count.
type TableScanNode struct {
	id     int
	tbl    *catalog.Table
	source catalog.BlockSource
	active []*catalog.Partition
	log    *slog.Logger
}

var _ Node = (*TableScanNode)(nil)

// NewTableScanNode creates a scan node for the given table. A nil
// source falls back to the block descriptors loaded with the catalog.
func NewTableScanNode(id int, tbl *catalog.Table, source catalog.BlockSource) *TableScanNode {
	if source == nil {
		source = catalog.EmbeddedSource{}
	}
	return &TableScanNode{
		id:     id,
		tbl:    tbl,
		source: source,
		log:    logging.ScanLogger(tbl.Name, id),
	}
}

// Finalize runs the partition filter once and caches the result.
// Calling it again with different predicates replaces the cached set.
func (s *TableScanNode) Finalize(preds []predicate.Range) error {
	active, err := filterPartitions(s.tbl, preds)
	if err != nil {
		return err
	}
	s.active = active

	s.log.Debug("finalized scan",
		"partitions_total", len(s.tbl.Partitions),
		"partitions_active", len(active),
		"predicates", len(preds),
	)
	if m := metrics.Get(); m != nil {
		m.SetActivePartitions(s.tbl.Name, len(active))
	}
	return nil
}

// ComputeUnits runs assignment, optional reduction, and emission over
// the active partition set. Zero active partitions is a valid input and
// yields an empty unit list.
func (s *TableScanNode) ComputeUnits(count NodeCount) ([]plan.ScanUnit, []string, error) {
	start := time.Now()

	switch count.kind {
	case kindAllRacks:
		return nil, nil, ErrAllRacks
	case kindExactly:
		if count.n <= 0 {
			return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidNodeCount, count.n)
		}
	}

	a, err := assignBlocks(s.active, s.source)
	if err != nil {
		return nil, nil, err
	}
	hostsAssigned := len(a.order)

	if count.kind == kindExactly {
		a = reduce(a, count.n)
	}

	units, hosts := emitUnits(s.id, a)

	s.log.Debug("computed scan units",
		"request", count.String(),
		"hosts_assigned", hostsAssigned,
		"units", len(units),
		"total_bytes", a.totalBytes(),
	)
	if m := metrics.Get(); m != nil {
		hostBytes := make([]int64, 0, len(a.order))
		for _, host := range a.order {
			hostBytes = append(hostBytes, a.byHost[host].bytes)
		}
		m.ObserveSchedule(s.tbl.Name, hostsAssigned, len(units), hostBytes, time.Since(start).Seconds())
	}

	return units, hosts, nil
}
