// quarry-planner is an offline inspector for the scan scheduler: it
// loads a table catalog, prunes partitions with the configured key
// ranges, computes the host placement for the requested node count, and
// reports (and optionally dumps) the resulting scan units.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/quarrydb/quarry/internal/catalog"
	"github.com/quarrydb/quarry/internal/config"
	"github.com/quarrydb/quarry/internal/logging"
	"github.com/quarrydb/quarry/internal/metrics"
	"github.com/quarrydb/quarry/internal/plan"
	"github.com/quarrydb/quarry/internal/predicate"
	"github.com/quarrydb/quarry/internal/scan"
)

// Version information (set via ldflags)
var (
	Version = "v0.1.0"
	GitSHA  = "unknown"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[main] Quarry planner %s (%s)", Version, GitSHA)

	cfg := config.MustLoad()
	logging.Setup(logging.Config{Format: cfg.Logging.Format, Level: cfg.Logging.Level})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown handler
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		log.Printf("[shutdown] received signal: %v", sig)
		cancel()
	}()

	if cfg.Metrics.Enabled {
		metrics.Init("quarry_planner")
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Address); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("[main] planner failed: %v", err)
	}
	log.Println("[main] planner finished cleanly")
}

func run(ctx context.Context, cfg config.Config) error {
	tbl, err := catalog.Fetch(ctx, cfg.Catalog.URL)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	slog.Info("loaded catalog",
		"table", tbl.Name,
		"clustering_columns", len(tbl.ClusteringCols),
		"partitions", len(tbl.Partitions),
	)

	var preds []predicate.Range
	if cfg.Scan.PredicatePath != "" {
		data, err := os.ReadFile(cfg.Scan.PredicatePath)
		if err != nil {
			return fmt.Errorf("read predicate spec: %w", err)
		}
		preds, err = predicate.ParseSpec(data)
		if err != nil {
			return err
		}
	}

	count, err := parseTargetNodes(cfg.Scan.TargetNodes)
	if err != nil {
		return err
	}

	node := scan.NewTableScanNode(cfg.Scan.NodeID, tbl, nil)
	if err := node.Finalize(preds); err != nil {
		return fmt.Errorf("finalize scan: %w", err)
	}

	units, hosts, err := node.ComputeUnits(count)
	if err != nil {
		return fmt.Errorf("compute scan units: %w", err)
	}

	for i, u := range units {
		slog.Info("scan unit",
			"host", hosts[i],
			"ranges", len(u.Ranges),
			"bytes", u.TotalBytes(),
		)
	}
	slog.Info("placement complete", "request", count.String(), "units", len(units))

	if cfg.Dump.Path != "" {
		d := &plan.Dump{
			Table:     tbl.Name,
			Request:   count.String(),
			Hosts:     hosts,
			Units:     units,
			CreatedAt: time.Now().UTC(),
		}
		if err := d.WriteFile(cfg.Dump.Path); err != nil {
			return err
		}
		slog.Info("wrote plan dump", "path", cfg.Dump.Path)
	}

	return nil
}

// parseTargetNodes maps the configured target to a placement request.
func parseTargetNodes(v string) (scan.NodeCount, error) {
	switch v {
	case "", "all":
		return scan.AllHostsWithData, nil
	case "all-racks":
		return scan.AllRacks, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return scan.NodeCount{}, fmt.Errorf("invalid TARGET_NODES %q: %w", v, err)
	}
	return scan.Exactly(n), nil
}
