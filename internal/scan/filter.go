package scan

import (
	"fmt"

	"github.com/quarrydb/quarry/internal/catalog"
	"github.com/quarrydb/quarry/internal/predicate"
)

// filterPartitions returns the partitions worth visiting: those holding
// at least one block whose key values pass every supplied range
// predicate. A nil predicate slot imposes no constraint on its column.
// The input order is preserved and nothing is mutated, so the filter is
// safe to run any number of times with different predicates.
func filterPartitions(tbl *catalog.Table, preds []predicate.Range) ([]*catalog.Partition, error) {
	if len(preds) > len(tbl.ClusteringCols) {
		return nil, fmt.Errorf("%w: %d predicates for table %s with %d clustering columns",
			ErrPredicateArity, len(preds), tbl.Name, len(tbl.ClusteringCols))
	}

	var active []*catalog.Partition
	for _, p := range tbl.Partitions {
		if len(p.Blocks) == 0 {
			// No I/O value in visiting an empty partition.
			continue
		}
		if len(p.KeyValues) != len(tbl.ClusteringCols) {
			return nil, fmt.Errorf("%w: partition %d has %d key values, table %s has %d clustering columns",
				ErrKeyValueArity, p.ID, len(p.KeyValues), tbl.Name, len(tbl.ClusteringCols))
		}

		matched := true
		for i, r := range preds {
			if r != nil && !r.Accepts(p.KeyValues[i]) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		// Partitions are immutable once loaded, copying the reference
		// is enough.
		active = append(active, p)
	}
	return active, nil
}
