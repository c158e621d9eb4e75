package scan

import (
	"github.com/quarrydb/quarry/internal/plan"
)

// emitUnits packages each surviving host's block list into a
// dispatchable scan unit: one file range per assigned block, no
// filtering, no merging of adjacent ranges. Units follow the
// assignment's host order so the returned host list stays
// index-aligned with the unit list.
func emitUnits(nodeID int, a *assignment) ([]plan.ScanUnit, []string) {
	units := make([]plan.ScanUnit, 0, len(a.order))
	hosts := make([]string, 0, len(a.order))

	for _, host := range a.order {
		w := a.byHost[host]
		ranges := make([]plan.FileRange, 0, len(w.blocks))
		for _, b := range w.blocks {
			ranges = append(ranges, plan.FileRange{
				Path:        b.Path,
				Offset:      b.Offset,
				Length:      b.Length,
				PartitionID: b.PartitionID,
			})
		}
		units = append(units, plan.ScanUnit{NodeID: nodeID, Ranges: ranges})
		hosts = append(hosts, host)
	}

	return units, hosts
}
