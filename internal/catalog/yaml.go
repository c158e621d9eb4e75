package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyCatalog is returned when a catalog document names no table.
	ErrEmptyCatalog = errors.New("catalog: document names no table")

	// ErrKeyValueArity is returned when a partition's key values don't
	// line up with the table's clustering columns.
	ErrKeyValueArity = errors.New("catalog: partition key values do not match clustering columns")

	// ErrDuplicatePartition is returned when two partitions share an id.
	ErrDuplicatePartition = errors.New("catalog: duplicate partition id")
)

type tableDoc struct {
	Table             string         `yaml:"table"`
	ClusteringColumns []string       `yaml:"clustering_columns"`
	Partitions        []partitionDoc `yaml:"partitions"`
}

type partitionDoc struct {
	ID        int64      `yaml:"id"`
	KeyValues []string   `yaml:"key_values"`
	Blocks    []blockDoc `yaml:"blocks"`
}

type blockDoc struct {
	Path     string   `yaml:"path"`
	Offset   int64    `yaml:"offset"`
	Length   int64    `yaml:"length"`
	Replicas []string `yaml:"replicas"`
}

// Parse decodes a YAML catalog document into a Table.
//
// Blocks with an empty replica list are loaded as-is: missing replica
// metadata is the scheduler's error to report, with the offending file
// and offset, not the loader's to repair.
func Parse(data []byte) (*Table, error) {
	var doc tableDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if doc.Table == "" {
		return nil, ErrEmptyCatalog
	}

	tbl := &Table{
		Name:           doc.Table,
		ClusteringCols: doc.ClusteringColumns,
	}

	seen := make(map[int64]bool, len(doc.Partitions))
	for _, pd := range doc.Partitions {
		if seen[pd.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePartition, pd.ID)
		}
		seen[pd.ID] = true

		if len(pd.KeyValues) != len(doc.ClusteringColumns) {
			return nil, fmt.Errorf("%w: partition %d has %d key values, table %s has %d clustering columns",
				ErrKeyValueArity, pd.ID, len(pd.KeyValues), doc.Table, len(doc.ClusteringColumns))
		}

		p := &Partition{
			ID:        pd.ID,
			KeyValues: pd.KeyValues,
		}
		for _, bd := range pd.Blocks {
			p.Blocks = append(p.Blocks, Block{
				Path:        bd.Path,
				PartitionID: pd.ID,
				Offset:      bd.Offset,
				Length:      bd.Length,
				Replicas:    bd.Replicas,
			})
		}
		tbl.Partitions = append(tbl.Partitions, p)
	}

	return tbl, nil
}

// Load reads a catalog file from the local filesystem. Files ending in
// .zst are decompressed before parsing.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if IsCompressed(path) {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress catalog %s: %w", path, err)
		}
	}
	return Parse(data)
}

// IsCompressed reports whether the path names a zstd-compressed catalog.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
