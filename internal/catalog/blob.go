package catalog

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// driver
	_ "gocloud.dev/blob/gcsblob"  // gs:// driver
	_ "gocloud.dev/blob/s3blob"   // s3:// driver
)

// Fetch reads and parses a catalog document. The location may be a plain
// filesystem path or a blob URL (file://, gs://, s3://); compressed
// catalogs (.zst) are handled either way.
func Fetch(ctx context.Context, location string) (*Table, error) {
	if !strings.Contains(location, "://") {
		return Load(location)
	}

	bucketURL, key, err := splitBlobURL(location)
	if err != nil {
		return nil, err
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	defer bucket.Close()

	reader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("open catalog object %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read catalog object %s: %w", key, err)
	}

	if IsCompressed(key) {
		data, err = decompress(data)
		if err != nil {
			return nil, fmt.Errorf("decompress catalog %s: %w", key, err)
		}
	}
	return Parse(data)
}

// splitBlobURL splits a catalog URL into the bucket URL gocloud opens
// and the object key within it. For file URLs the bucket is the
// containing directory.
func splitBlobURL(raw string) (bucketURL, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse catalog url %s: %w", raw, err)
	}

	if u.Scheme == "file" {
		dir := path.Dir(u.Path)
		return "file://" + dir, path.Base(u.Path), nil
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("catalog url %s: missing bucket or object key", raw)
	}
	return u.Scheme + "://" + u.Host, key, nil
}
