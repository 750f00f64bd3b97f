package admixplot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// GSPrefix marks an input that lives in Google Storage.
const GSPrefix = "gs://"

// IsGoogleStorage reports whether path is a gs:// URL.
func IsGoogleStorage(path string) bool {
	return strings.HasPrefix(path, GSPrefix)
}

// AnyGoogleStorage reports whether any of paths is a gs:// URL, which tells
// the caller whether a storage client is needed at all.
func AnyGoogleStorage(paths ...string) bool {
	for _, path := range paths {
		if IsGoogleStorage(path) {
			return true
		}
	}
	return false
}

func splitGoogleStoragePath(path string) (bucket, object string, err error) {
	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, GSPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// CheckInput confirms that path can be opened before any processing begins.
// Local paths must be readable regular files; gs:// objects must exist.
func CheckInput(ctx context.Context, path string, client *storage.Client) error {
	if IsGoogleStorage(path) {
		if client == nil {
			return fmt.Errorf("%s: no Google Storage client", path)
		}

		bucket, object, err := splitGoogleStoragePath(path)
		if err != nil {
			return err
		}

		// Make a hard call to confirm the object exists
		if _, err := client.Bucket(bucket).Object(object).Attrs(ctx); err != nil {
			return pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fstat, err := f.Stat()
	if err != nil {
		return err
	}
	if fstat.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	return nil
}

// OpenInput opens a local file or gs:// object for reading. Compressed content
// is transparently decompressed.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var raw io.ReadCloser

	if IsGoogleStorage(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client", path)
		}

		bucket, object, err := splitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}
		raw = r
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		raw = f
	}

	out, err := MaybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return out, nil
}
