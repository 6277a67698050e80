package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/stretchr/testify/assert"
)

func TestWrapErr(t *testing.T) {
	dial := &url.Error{Op: "Post", URL: "http://localhost:9200", Err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}}

	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
	}{
		{name: "dial failure", err: dial, wantUnavailable: true},
		{name: "deadline", err: fmt.Errorf("search: %w", context.DeadlineExceeded), wantUnavailable: true},
		{name: "connection reset", err: fmt.Errorf("read: %w", syscall.ECONNRESET), wantUnavailable: true},
		{name: "truncated body", err: io.ErrUnexpectedEOF, wantUnavailable: true},
		{name: "cluster overloaded", err: &types.ElasticsearchError{Status: 503}, wantUnavailable: true},
		{name: "too many requests", err: &types.ElasticsearchError{Status: 429}, wantUnavailable: true},
		{name: "bad request", err: &types.ElasticsearchError{Status: 400}},
		{name: "canceled", err: context.Canceled},
		{name: "decode bug", err: &json.SyntaxError{Offset: 3}},
		{name: "plain error", err: errors.New("failed to map document")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var su *apperr.StoreUnavailableError
			assert.Equal(t, tt.wantUnavailable, errors.As(wrapErr("find books", tt.err), &su))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.ElasticsearchError{Status: 404}))
	assert.False(t, isNotFound(&types.ElasticsearchError{Status: 500}))
	assert.False(t, isNotFound(errors.New("boom")))
}
