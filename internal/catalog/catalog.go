// Package catalog holds the table metadata the planner schedules against:
// partitions, their key values, and the block descriptors with replica
// placement. Everything here is loaded once and treated as read-only by
// the scheduling layer.
package catalog

// Table describes one table's on-disk layout.
type Table struct {
	Name           string
	ClusteringCols []string
	Partitions     []*Partition
}

// Partition is a physically distinct subset of a table's data, keyed by
// one literal value per clustering column. Immutable after load; the
// scheduler only ever holds references.
type Partition struct {
	ID        int64
	KeyValues []string
	Blocks    []Block
}

// Block is a contiguous byte range of one data file, replicated across
// one or more hosts.
type Block struct {
	Path        string
	PartitionID int64
	Offset      int64
	Length      int64
	Replicas    []string
}

// BlockSource enumerates the data blocks of a partition. The default
// implementation serves the descriptors loaded with the table; a live
// block-location service can be substituted behind the same interface.
type BlockSource interface {
	Blocks(p *Partition) ([]Block, error)
}

// EmbeddedSource serves the block descriptors already attached to each
// partition.
type EmbeddedSource struct{}

func (EmbeddedSource) Blocks(p *Partition) ([]Block, error) {
	return p.Blocks, nil
}
