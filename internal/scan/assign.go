package scan

import (
	"fmt"

	"github.com/quarrydb/quarry/internal/catalog"
)

// hostWorkload accumulates the blocks routed to one host during a
// single scheduling run. Invariant: bytes == sum of block lengths.
type hostWorkload struct {
	host   string
	seq    int // first-assignment order; deterministic tie-breaker
	bytes  int64
	blocks []catalog.Block
}

func (w *hostWorkload) addBlock(b catalog.Block) {
	w.blocks = append(w.blocks, b)
	w.bytes += b.Length
}

// absorb merges another host's entire workload into this one. Whole-host
// merge only: once a host is absorbed its blocks travel together.
func (w *hostWorkload) absorb(o *hostWorkload) {
	w.blocks = append(w.blocks, o.blocks...)
	w.bytes += o.bytes
}

func (w *hostWorkload) clone() *hostWorkload {
	c := &hostWorkload{host: w.host, seq: w.seq, bytes: w.bytes}
	c.blocks = append(c.blocks, w.blocks...)
	return c
}

// assignment is the host→workload map plus the first-assignment host
// order. Every consumer iterates the order slice, never the map, so no
// output depends on Go map iteration.
type assignment struct {
	byHost map[string]*hostWorkload
	order  []string
}

func newAssignment() *assignment {
	return &assignment{byHost: make(map[string]*hostWorkload)}
}

func (a *assignment) newHost(host string) *hostWorkload {
	w := &hostWorkload{host: host, seq: len(a.order)}
	a.byHost[host] = w
	a.order = append(a.order, host)
	return w
}

func (a *assignment) totalBytes() int64 {
	var total int64
	for _, host := range a.order {
		total += a.byHost[host].bytes
	}
	return total
}

// assignBlocks routes every block of every active partition to one of
// its replica hosts, greedily picking the least-loaded candidate.
// Blocks are processed in partition-then-file enumeration order; large
// blocks met late are not retroactively rebalanced here, that is the
// reducer's job.
//
// A candidate not yet holding work wins immediately: zero is the floor
// of any byte total, so no later candidate can beat it. Among existing
// candidates the strictly smallest byte total wins, ties going to the
// earliest position in the block's replica list.
func assignBlocks(active []*catalog.Partition, src catalog.BlockSource) (*assignment, error) {
	a := newAssignment()

	for _, p := range active {
		blocks, err := src.Blocks(p)
		if err != nil {
			return nil, fmt.Errorf("enumerate blocks of partition %d: %w", p.ID, err)
		}

		for _, b := range blocks {
			if len(b.Replicas) == 0 {
				// Metadata corruption; abort so the operator can find it.
				return nil, fmt.Errorf("%w: file %s offset %d", ErrNoReplicas, b.Path, b.Offset)
			}

			var min *hostWorkload
			for _, host := range b.Replicas {
				w, ok := a.byHost[host]
				if !ok {
					min = a.newHost(host)
					break
				}
				if min == nil || w.bytes < min.bytes {
					min = w
				}
			}
			min.addBlock(b)
		}
	}

	return a, nil
}
