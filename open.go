package genmapload

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// SplitGSPath splits gs://bucket/path/to/object into bucket and object.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// IsGSPath reports whether path names a Google Storage object.
func IsGSPath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// OpenInput opens a local file or, when client is non-nil, a gs:// object.
// Local paths may start with ~/.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if IsGSPath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client configured", path)
		}

		bucketName, objectName, err := SplitGSPath(path)
		if err != nil {
			return nil, err
		}

		rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return rdr, nil
	}

	return os.Open(ExpandHome(path))
}

// ReadInput loads an entire input into memory, transparently decompressing
// gzip, bzip2, xz and zip data. Failing to open the input yields an error
// wrapping ErrMissingInput.
func ReadInput(ctx context.Context, path string, client *storage.Client) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no path given", ErrMissingInput)
	}

	rc, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	defer rc.Close()

	data, err := ReadAllMaybeCompressed(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingInput, path, err)
	}

	return data, nil
}
