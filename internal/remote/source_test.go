package remote

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.ServeContent(w, r, "archive.tar", time.Time{}, bytes.NewReader(data))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSource_Open(t *testing.T) {
	t.Parallel()

	data := []byte("hello world")
	server := serve(t, data)

	src, err := NewSource(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), src.Size())
	assert.Equal(t, server.URL, src.URL())

	body, err := src.Open(context.Background())
	require.NoError(t, err)
	defer body.Close()
	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSource_ReadAt(t *testing.T) {
	t.Parallel()

	data := []byte("hello world")
	src, err := NewSource(context.Background(), serve(t, data).URL)
	require.NoError(t, err)
	ra := src.ReaderAt(context.Background())

	tests := []struct {
		name    string
		bufSize int
		offset  int64
		wantN   int
		wantErr error
		want    string
	}{
		{"middle", 5, 6, 5, nil, "world"},
		{"past end", 10, int64(len(data) - 3), 3, io.EOF, "rld"},
		{"at end", 4, int64(len(data)), 0, io.EOF, ""},
		{"empty buffer", 0, 0, 0, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := make([]byte, tt.bufSize)
			n, err := ra.ReadAt(buf, tt.offset)
			assert.Equal(t, tt.wantN, n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, string(buf[:n]))
		})
	}

	_, err = ra.ReadAt(make([]byte, 1), -1)
	assert.Error(t, err)
}

func TestSource_Headers(t *testing.T) {
	t.Parallel()

	var seen atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Header.Get("Authorization") == "Bearer token" && r.Header.Get("Accept-Encoding") == "identity" {
			seen.Add(1)
		}
		nethttp.ServeContent(w, r, "a", time.Time{}, bytes.NewReader([]byte("abc")))
	}))
	t.Cleanup(server.Close)

	src, err := NewSource(context.Background(), server.URL, WithHeader("Authorization", "Bearer token"))
	require.NoError(t, err)
	body, err := src.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, body.Close())

	assert.Equal(t, int32(2), seen.Load(), "HEAD and GET both carry the headers")
}

func TestSource_RangeUnsupported(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write([]byte("whole body"))
	}))
	t.Cleanup(server.Close)

	src, err := NewSource(context.Background(), server.URL)
	require.NoError(t, err)

	_, err = src.ReaderAt(context.Background()).ReadAt(make([]byte, 4), 2)
	require.ErrorIs(t, err, ErrRangeUnsupported)
}

func TestSource_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.NotFoundHandler())
	t.Cleanup(server.Close)

	_, err := NewSource(context.Background(), server.URL)
	require.Error(t, err)
}

func TestParseContentRange(t *testing.T) {
	t.Parallel()

	size, err := parseContentRange("bytes 0-0/1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), size)

	for _, bad := range []string{"", "bytes 0-0/*", "items 0-0/5", "bytes 0-0", "bytes 0-0/-4", "bytes 0-0/x"} {
		_, err := parseContentRange(bad)
		assert.Error(t, err, bad)
	}
}
