package collector

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/ingest/reader"
)

const defaultWorkerCount = 4

type Result[T any] struct {
	Result T
	Err    error
}

type Collector[T any] interface {
	Collect(ctx context.Context) (<-chan Result[T], error)
}

// BookCollector validates dataset records and maps them to books. Invalid records are
// forwarded as errors so the pipeline can count and skip them.
type BookCollector struct {
	Reader  reader.RecordReader
	Workers int
}

func NewBookCollector(r reader.RecordReader) *BookCollector {
	return &BookCollector{
		Reader:  r,
		Workers: defaultWorkerCount,
	}
}

func (bc *BookCollector) Collect(ctx context.Context) (<-chan Result[domain.Book], error) {
	records, err := bc.Reader.ReadParallel(ctx, bc.Workers)
	if err != nil {
		return nil, err
	}

	out := make(chan Result[domain.Book])
	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case res, ok := <-records:
				if !ok {
					slog.Info("Reader channel closed, stopping collection")
					return
				}

				var r Result[domain.Book]
				switch {
				case res.Err != nil:
					r.Err = res.Err
				default:
					if err := res.Record.Validate(); err != nil {
						r.Err = err
					} else {
						r.Result = res.Record.ToBook()
					}
				}

				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

var _ Collector[domain.Book] = (*BookCollector)(nil)
