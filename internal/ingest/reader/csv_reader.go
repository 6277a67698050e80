package reader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/book-hunter/internal/ingest"
)

// ListSeparator splits multi-valued CSV cells such as genres and tags.
const ListSeparator = "|"

type CSVReader struct {
	reader io.Reader
}

func NewCSVReader(reader io.Reader) *CSVReader {
	return &CSVReader{
		reader: reader,
	}
}

func (cr *CSVReader) ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error) {
	if workerCount < 1 {
		workerCount = 1
	}

	out := make(chan ParallelReaderResult)
	csvReader := csv.NewReader(cr.reader)
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	jobs := make(chan []string, workerCount*2)
	var wg sync.WaitGroup

	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case row, ok := <-jobs:
					if !ok {
						return
					}
					var res ParallelReaderResult
					if len(row) != len(headers) {
						res.Err = fmt.Errorf("row has %d fields, header has %d: %w", len(row), len(headers), io.ErrUnexpectedEOF)
					} else {
						res.Record, res.Err = parseRow(headers, row)
					}
					select {
					case out <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for {
			row, err := csvReader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				slog.Error("Error reading CSV row", "error", err)
				select {
				case out <- ParallelReaderResult{Err: err}:
				case <-ctx.Done():
					slog.Info("Context cancelled, stopping CSV read...")
					return
				}
				continue
			}
			select {
			case jobs <- row:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

func parseRow(headers, row []string) (ingest.Record, error) {
	var r ingest.Record
	for i, h := range headers {
		v := strings.TrimSpace(row[i])
		switch h {
		case "id":
			r.ID = v
		case "title":
			r.Title = v
		case "author":
			r.Author = v
		case "isbn":
			r.ISBN = v
		case "description":
			r.Description = row[i]
		case "cover_image_url":
			r.CoverImageURL = v
		case "genres":
			r.Genres = splitList(v)
		case "tags":
			r.Tags = splitList(v)
		case "average_rating":
			if v == "" {
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return r, fmt.Errorf("invalid average_rating %q: %w", v, err)
			}
			r.AverageRating = &f
		case "ratings_count":
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return r, fmt.Errorf("invalid ratings_count %q: %w", v, err)
			}
			r.RatingsCount = n
		case "created_at":
			if v == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return r, fmt.Errorf("invalid created_at %q: %w", v, err)
			}
			r.CreatedAt = &t
		}
	}
	return r, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ListSeparator)
}
