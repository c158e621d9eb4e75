package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Catalog CatalogConfig
	Scan    ScanConfig
	Dump    DumpConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

type CatalogConfig struct {
	// URL is a plain path or a blob URL (file://, gs://, s3://).
	URL string
}

type ScanConfig struct {
	NodeID int
	// TargetNodes is "all", "all-racks", or a positive integer.
	TargetNodes string
	// PredicatePath points at an optional YAML predicate spec.
	PredicatePath string
}

type DumpConfig struct {
	// Path, when set, is where the computed placement is written as
	// zstd-compressed JSON.
	Path string
}

type MetricsConfig struct {
	Enabled bool
	Address string
}

type LoggingConfig struct {
	Format string
	Level  string
}

// MustLoad reads configuration from environment variables.
func MustLoad() Config {
	log.Println("[config] loading")

	nodeID := 0
	if v := os.Getenv("SCAN_NODE_ID"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			nodeID = parsed
		}
	}

	return Config{
		Catalog: CatalogConfig{
			URL: getenvDefault("CATALOG_URL", "./catalog.yaml"),
		},
		Scan: ScanConfig{
			NodeID:        nodeID,
			TargetNodes:   getenvDefault("TARGET_NODES", "all"),
			PredicatePath: os.Getenv("PREDICATES_PATH"),
		},
		Dump: DumpConfig{
			Path: os.Getenv("DUMP_PATH"),
		},
		Metrics: MetricsConfig{
			Enabled: os.Getenv("METRICS_ENABLED") == "true",
			Address: getenvDefault("METRICS_ADDR", ":9090"),
		},
		Logging: LoggingConfig{
			Format: getenvDefault("LOG_FORMAT", "text"),
			Level:  getenvDefault("LOG_LEVEL", "info"),
		},
	}
}

func getenvDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
