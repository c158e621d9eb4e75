// Package plan carries the planner's placement output consumed by the
// dispatch layer. The wire encoding proper lives with the dispatcher;
// these types are the in-process handoff.
package plan

// FileRange addresses one contiguous byte range of a data file.
type FileRange struct {
	Path        string `json:"path"`
	Offset      int64  `json:"offset"`
	Length      int64  `json:"length"`
	PartitionID int64  `json:"partition_id"`
}

// ScanUnit is the work packaged for one execution host: the emitting
// scan node's id plus the byte ranges that host should read. The host
// itself travels in a parallel list, index-aligned with the unit list.
type ScanUnit struct {
	NodeID int         `json:"node_id"`
	Ranges []FileRange `json:"ranges"`
}

// TotalBytes sums the range lengths of the unit.
func (u ScanUnit) TotalBytes() int64 {
	var total int64
	for _, r := range u.Ranges {
		total += r.Length
	}
	return total
}
