package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/collector"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/reader"
)

// ImportFile runs a BookPipeline over the dataset at path, choosing the reader by extension.
func ImportFile(ctx context.Context, path string, indexer catalog.Indexer, opts ...PipelineOption) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r, err := reader.ForPath(path, f)
	if err != nil {
		return Stats{}, err
	}

	slog.Info("Importing dataset", "path", path)
	return NewPipeline(collector.NewBookCollector(r), indexer, opts...).Run(ctx)
}
