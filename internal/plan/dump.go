package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Dump is a computed placement written out for offline inspection: the
// table, the node-count request it answered, and the unit list with its
// index-aligned host list.
type Dump struct {
	Table     string     `json:"table"`
	Request   string     `json:"request"`
	Hosts     []string   `json:"hosts"`
	Units     []ScanUnit `json:"units"`
	CreatedAt time.Time  `json:"created_at"`
}

// WriteFile writes the dump as zstd-compressed JSON.
func (d *Dump) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan dump: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd encoder: %w", err)
	}

	if err := os.WriteFile(path, compressed, 0644); err != nil {
		return fmt.Errorf("write plan dump %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a dump previously written with WriteFile.
func ReadFile(path string) (*Dump, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan dump %s: %w", path, err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress plan dump %s: %w", path, err)
	}

	var d Dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode plan dump %s: %w", path, err)
	}
	return &d, nil
}
