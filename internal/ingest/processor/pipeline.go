package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/collector"
)

const defaultBatchSize = 1000

// Pipeline runs one import.
type Pipeline interface {
	Run(ctx context.Context) (Stats, error)
}

// BulkOptions defines bulk processing configuration
type BulkOptions struct {
	Enabled bool
	Size    int
}

type PipelineConfig struct {
	Name string
	Bulk *BulkOptions
}

// Stats summarizes a pipeline run.
type Stats struct {
	Saved   int
	Skipped int
	Failed  int
	Batches int
}

// BookPipeline moves collected books into a catalog.Indexer, one by one or in batches.
type BookPipeline struct {
	source  collector.Collector[domain.Book]
	indexer catalog.Indexer
	config  *PipelineConfig
}

type PipelineOption func(pipeline *BookPipeline)

// WithBulk configures bulk processing with specified batch size
func WithBulk(size int) PipelineOption {
	return func(pipeline *BookPipeline) {
		if size <= 0 {
			size = defaultBatchSize
		}
		pipeline.config.Bulk = &BulkOptions{Enabled: true, Size: size}
	}
}

func NewPipeline(source collector.Collector[domain.Book], indexer catalog.Indexer, opts ...PipelineOption) *BookPipeline {
	p := &BookPipeline{
		source:  source,
		indexer: indexer,
		config: &PipelineConfig{
			Name: "book-pipeline",
			Bulk: &BulkOptions{
				Enabled: false,
				Size:    defaultBatchSize,
			},
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *BookPipeline) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	slog.Info("Starting pipeline run",
		"pipeline", p.config.Name,
		"bulk_enabled", p.config.Bulk.Enabled,
		"batch_size", p.config.Bulk.Size,
	)

	results, err := p.source.Collect(ctx)
	if err != nil {
		slog.Error("Error collecting books", "error", err, "pipeline", p.config.Name)
		return Stats{}, err
	}

	var stats Stats
	if p.config.Bulk.Enabled {
		err = p.processBatch(ctx, results, &stats)
	} else {
		err = p.processBasic(ctx, results, &stats)
	}

	slog.Info("Pipeline run completed",
		"pipeline", p.config.Name,
		"duration", time.Since(start),
		"saved", stats.Saved,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"batches", stats.Batches,
		"error", err,
	)

	return stats, err
}

var _ Pipeline = (*BookPipeline)(nil)

func (p *BookPipeline) processBasic(ctx context.Context, results <-chan collector.Result[domain.Book], stats *Stats) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return nil
			}

			if res.Err != nil {
				slog.Warn("Skipping invalid record", "error", res.Err, "pipeline", p.config.Name)
				stats.Skipped++
				continue
			}

			id, err := p.indexer.Save(ctx, res.Result)
			if err != nil {
				slog.Error("Error saving book", "error", err, "pipeline", p.config.Name, "title", res.Result.Title)
				stats.Failed++
				continue
			}
			slog.Debug("Book saved", "id", id, "title", res.Result.Title)
			stats.Saved++
		}
	}
}

func (p *BookPipeline) processBatch(ctx context.Context, results <-chan collector.Result[domain.Book], stats *Stats) error {
	batch := make([]domain.Book, 0, p.config.Bulk.Size)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := p.indexer.SaveBulk(ctx, batch); err != nil {
			slog.Error("Error saving bulk of books",
				"error", err,
				"count", len(batch),
				"pipeline", p.config.Name,
			)
			stats.Failed += len(batch)
		} else {
			stats.Saved += len(batch)
			stats.Batches++
			slog.Info("Bulk saved", "count", len(batch), "batch", stats.Batches, "pipeline", p.config.Name)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				flush()
				return nil
			}

			if res.Err != nil {
				slog.Warn("Skipping invalid record", "error", res.Err, "pipeline", p.config.Name)
				stats.Skipped++
				continue
			}

			batch = append(batch, res.Result)
			if len(batch) >= p.config.Bulk.Size {
				flush()
			}
		}
	}
}
