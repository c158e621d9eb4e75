package scan

import (
	"errors"
	"testing"

	"github.com/quarrydb/quarry/internal/catalog"
	"github.com/quarrydb/quarry/internal/predicate"
)

func clusterTable() *catalog.Table {
	return &catalog.Table{
		Name:           "web_logs",
		ClusteringCols: []string{"dt"},
		Partitions: []*catalog.Partition{
			{ID: 1, KeyValues: []string{"2026-01-01"}, Blocks: []catalog.Block{
				{Path: "/wl/p1/f0", PartitionID: 1, Offset: 0, Length: 100, Replicas: []string{"A", "B"}},
				{Path: "/wl/p1/f0", PartitionID: 1, Offset: 100, Length: 50, Replicas: []string{"B", "C"}},
			}},
			{ID: 2, KeyValues: []string{"2026-01-02"}, Blocks: []catalog.Block{
				{Path: "/wl/p2/f0", PartitionID: 2, Offset: 0, Length: 200, Replicas: []string{"A"}},
			}},
		},
	}
}

func TestTableScanNodeEndToEnd(t *testing.T) {
	node := NewTableScanNode(4, clusterTable(), nil)
	if err := node.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	units, hosts, err := node.ComputeUnits(AllHostsWithData)
	if err != nil {
		t.Fatalf("ComputeUnits failed: %v", err)
	}
	if len(units) != len(hosts) {
		t.Fatalf("unit list and host list misaligned: %d vs %d", len(units), len(hosts))
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units (A and B), got %d", len(units))
	}

	var total int64
	byHost := make(map[string]int64)
	for i, u := range units {
		if u.NodeID != 4 {
			t.Errorf("unit %d: expected node id 4, got %d", i, u.NodeID)
		}
		byHost[hosts[i]] = u.TotalBytes()
		total += u.TotalBytes()
	}
	if total != 350 {
		t.Errorf("conservation violated: expected 350 bytes total, got %d", total)
	}
	if byHost["A"] != 300 || byHost["B"] != 50 {
		t.Errorf("expected A=300 B=50, got %v", byHost)
	}
}

func TestTableScanNodeReducesToTarget(t *testing.T) {
	node := NewTableScanNode(1, clusterTable(), nil)
	if err := node.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	units, hosts, err := node.ComputeUnits(Exactly(1))
	if err != nil {
		t.Fatalf("ComputeUnits failed: %v", err)
	}
	if len(units) != 1 || len(hosts) != 1 {
		t.Fatalf("expected a single unit and host, got %d/%d", len(units), len(hosts))
	}
	if hosts[0] != "A" {
		t.Errorf("heaviest host A should survive, got %s", hosts[0])
	}
	if units[0].TotalBytes() != 350 {
		t.Errorf("survivor should carry all 350 bytes, got %d", units[0].TotalBytes())
	}
	if len(units[0].Ranges) != 3 {
		t.Errorf("expected one range per block (3), got %d", len(units[0].Ranges))
	}
}

func TestTableScanNodeRepeatedInvocations(t *testing.T) {
	node := NewTableScanNode(1, clusterTable(), nil)
	if err := node.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	// A reduced run must not leak into a later full run.
	if _, _, err := node.ComputeUnits(Exactly(1)); err != nil {
		t.Fatalf("reduced run failed: %v", err)
	}
	units, hosts, err := node.ComputeUnits(AllHostsWithData)
	if err != nil {
		t.Fatalf("full run failed: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected a fresh 2-host placement, got %d units for %v", len(units), hosts)
	}
}

func TestTableScanNodePreconditions(t *testing.T) {
	node := NewTableScanNode(1, clusterTable(), nil)
	if err := node.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	tests := []struct {
		name    string
		count   NodeCount
		wantErr error
	}{
		{"zero nodes", Exactly(0), ErrInvalidNodeCount},
		{"negative nodes", Exactly(-3), ErrInvalidNodeCount},
		{"all racks", AllRacks, ErrAllRacks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, hosts, err := node.ComputeUnits(tt.count)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if units != nil || hosts != nil {
				t.Error("no partial result expected on precondition failure")
			}
		})
	}
}

func TestTableScanNodeEmptyTable(t *testing.T) {
	tbl := &catalog.Table{Name: "empty", ClusteringCols: []string{"dt"}}
	node := NewTableScanNode(1, tbl, nil)
	if err := node.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	units, hosts, err := node.ComputeUnits(Exactly(8))
	if err != nil {
		t.Fatalf("empty table is valid input, got error: %v", err)
	}
	if len(units) != 0 || len(hosts) != 0 {
		t.Errorf("expected no work, got %d units", len(units))
	}
}

func TestTableScanNodeFinalizeWithPredicates(t *testing.T) {
	node := NewTableScanNode(1, clusterTable(), nil)
	preds := []predicate.Range{predicate.Interval{High: "2026-01-01"}}
	if err := node.Finalize(preds); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	units, _, err := node.ComputeUnits(AllHostsWithData)
	if err != nil {
		t.Fatalf("ComputeUnits failed: %v", err)
	}
	var total int64
	for _, u := range units {
		total += u.TotalBytes()
	}
	if total != 150 {
		t.Errorf("only partition 1 (150 bytes) should survive the predicate, got %d", total)
	}
}

func TestRowScanNodeRoundRobin(t *testing.T) {
	node := NewRowScanNode(2, clusterTable(), []string{"rs-1", "rs-2", "rs-3"})
	if err := node.Finalize(nil); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	units, hosts, err := node.ComputeUnits(AllHostsWithData)
	if err != nil {
		t.Fatalf("ComputeUnits failed: %v", err)
	}
	// 2 active partitions over 3 hosts: rs-1 and rs-2 get one each.
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if hosts[0] != "rs-1" || hosts[1] != "rs-2" {
		t.Errorf("expected round-robin hosts [rs-1 rs-2], got %v", hosts)
	}

	units, hosts, err = node.ComputeUnits(Exactly(1))
	if err != nil {
		t.Fatalf("ComputeUnits with cap failed: %v", err)
	}
	if len(units) != 1 || hosts[0] != "rs-1" {
		t.Errorf("cap of 1 should place everything on rs-1, got %v", hosts)
	}

	if _, _, err := node.ComputeUnits(AllRacks); !errors.Is(err, ErrAllRacks) {
		t.Errorf("row scan should also reject all-racks, got %v", err)
	}
}
