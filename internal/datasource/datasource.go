// Package datasource defines the byte-stream source abstraction consumed by
// the parser. Implementations live in subpackages (local file, HTTP).
package datasource

import (
	"context"
	"io"
)

// Source opens a stream of raw input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
