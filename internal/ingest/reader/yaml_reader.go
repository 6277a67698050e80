package reader

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Dataset is the YAML layout of a seed file.
type Dataset struct {
	Books []yaml.Node `yaml:"books"`
}

type YAMLReader struct {
	reader io.Reader
}

func NewYAMLReader(reader io.Reader) *YAMLReader {
	return &YAMLReader{
		reader: reader,
	}
}

// ReadParallel decodes the document up front and decodes each entry on its own, so a bad
// entry is reported without losing the rest.
func (yr *YAMLReader) ReadParallel(ctx context.Context, workerCount int) (<-chan ParallelReaderResult, error) {
	var ds Dataset
	if err := yaml.NewDecoder(yr.reader).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	out := make(chan ParallelReaderResult)
	go func() {
		defer close(out)
		for i := range ds.Books {
			var res ParallelReaderResult
			if err := ds.Books[i].Decode(&res.Record); err != nil {
				res.Err = fmt.Errorf("book #%d (line %d): %w", i+1, ds.Books[i].Line, err)
			}
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
