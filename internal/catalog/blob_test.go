package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitBlobURL(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{
			name:       "s3 url",
			raw:        "s3://my-bucket/catalogs/web_logs.yaml",
			wantBucket: "s3://my-bucket",
			wantKey:    "catalogs/web_logs.yaml",
		},
		{
			name:       "gcs url",
			raw:        "gs://bucket/t.yaml.zst",
			wantBucket: "gs://bucket",
			wantKey:    "t.yaml.zst",
		},
		{
			name:       "file url",
			raw:        "file:///var/lib/quarry/catalog.yaml",
			wantBucket: "file:///var/lib/quarry",
			wantKey:    "catalog.yaml",
		},
		{
			name:    "missing key",
			raw:     "s3://bucket-only",
			wantErr: true,
		},
		{
			name:    "missing bucket",
			raw:     "s3:///just/a/key",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := splitBlobURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitBlobURL(%s) failed: %v", tt.raw, err)
			}
			if bucket != tt.wantBucket || key != tt.wantKey {
				t.Errorf("got (%s, %s), want (%s, %s)", bucket, key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func TestFetchPlainPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(catalogDoc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tbl, err := Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if tbl.Name != "web_logs" {
		t.Errorf("expected table web_logs, got %s", tbl.Name)
	}
}

func TestFetchFileURL(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(catalogDoc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tbl, err := Fetch(context.Background(), "file://"+dir+"/catalog.yaml")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(tbl.Partitions) != 2 {
		t.Errorf("expected 2 partitions, got %d", len(tbl.Partitions))
	}
}
