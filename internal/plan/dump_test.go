package plan

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDumpRoundTrip(t *testing.T) {
	in := &Dump{
		Table:   "web_logs",
		Request: "exactly-2",
		Hosts:   []string{"node-1", "node-2"},
		Units: []ScanUnit{
			{NodeID: 4, Ranges: []FileRange{
				{Path: "/wl/p1/f0", Offset: 0, Length: 100, PartitionID: 1},
				{Path: "/wl/p2/f0", Offset: 0, Length: 200, PartitionID: 2},
			}},
			{NodeID: 4, Ranges: []FileRange{
				{Path: "/wl/p1/f0", Offset: 100, Length: 50, PartitionID: 1},
			}},
		},
		CreatedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "plan.json.zst")
	if err := in.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if out.Table != in.Table || out.Request != in.Request {
		t.Errorf("header changed: got %s/%s", out.Table, out.Request)
	}
	if len(out.Hosts) != 2 || len(out.Units) != 2 {
		t.Fatalf("expected 2 hosts and 2 units, got %d/%d", len(out.Hosts), len(out.Units))
	}
	if out.Units[0].TotalBytes() != 300 || out.Units[1].TotalBytes() != 50 {
		t.Errorf("byte totals changed: %d/%d", out.Units[0].TotalBytes(), out.Units[1].TotalBytes())
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("timestamp changed: %v", out.CreatedAt)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.json.zst")); err == nil {
		t.Error("expected error for missing dump")
	}
}

func TestTotalBytes(t *testing.T) {
	u := ScanUnit{Ranges: []FileRange{{Length: 10}, {Length: 32}}}
	if got := u.TotalBytes(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	var empty ScanUnit
	if empty.TotalBytes() != 0 {
		t.Errorf("empty unit should total 0 bytes")
	}
}
