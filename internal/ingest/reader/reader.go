// Package reader streams seed dataset records from YAML and CSV sources.
package reader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/ingest"
)

type ParallelReaderResult struct {
	Record ingest.Record
	Err    error
}

type RecordReader interface {
	ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error)
}

// ForPath picks a reader by the dataset file extension.
func ForPath(path string, r io.Reader) (RecordReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLReader(r), nil
	case ".csv":
		return NewCSVReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q, expected .yaml, .yml or .csv", filepath.Ext(path))
	}
}
