// Package remote reads archives served over HTTP: a streaming GET for the
// scan and range requests for random access.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strconv"
	"strings"
)

// ErrRangeUnsupported is returned by ReadAt when the server ignores Range.
var ErrRangeUnsupported = errors.New("remote: range requests not supported")

// Source is a remote archive addressed by URL.
type Source struct {
	url     string
	client  *nethttp.Client
	headers nethttp.Header
	size    int64
}

// Option configures a Source.
type Option func(*Source)

// WithClient sets the HTTP client used for requests.
func WithClient(client *nethttp.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithHeader adds a header to each request.
func WithHeader(key, value string) Option {
	return func(s *Source) {
		if s.headers == nil {
			s.headers = make(nethttp.Header)
		}
		s.headers.Add(key, value)
	}
}

// NewSource creates a Source and probes the remote for its size.
// The size is -1 when the server reports neither Content-Length nor a
// Content-Range total.
func NewSource(ctx context.Context, url string, opts ...Option) (*Source, error) {
	s := &Source{url: url, size: -1}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = nethttp.DefaultClient
	}

	size, err := s.probeSize(ctx)
	if err != nil {
		return nil, err
	}
	s.size = size
	return s, nil
}

// URL returns the address of the source.
func (s *Source) URL() string {
	return s.url
}

// Size returns the content size, or -1 if unknown.
func (s *Source) Size() int64 {
	return s.size
}

// Open starts a full GET of the content. The caller must close the body.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := s.newRequest(ctx, nethttp.MethodGet)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK {
		drainClose(resp.Body)
		return nil, fmt.Errorf("get %s: %s", s.url, resp.Status)
	}
	return resp.Body, nil
}

// ReaderAt returns an io.ReaderAt that issues range requests bound to ctx.
func (s *Source) ReaderAt(ctx context.Context) io.ReaderAt {
	return &rangeReader{ctx: ctx, src: s}
}

type rangeReader struct {
	ctx context.Context
	src *Source
}

// ReadAt implements io.ReaderAt. A read that extends past the end returns
// the available bytes with io.EOF.
func (r *rangeReader) ReadAt(p []byte, off int64) (int, error) {
	s := r.src
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 {
		return 0, fmt.Errorf("read at %d: negative offset", off)
	}
	if s.size >= 0 && off >= s.size {
		return 0, io.EOF
	}

	end := off + int64(len(p)) - 1
	expected := len(p)
	if s.size >= 0 && end >= s.size {
		end = s.size - 1
		expected = int(end - off + 1)
	}

	req, err := s.newRequest(r.ctx, nethttp.MethodGet)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, end))
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer drainClose(resp.Body)

	switch resp.StatusCode {
	case nethttp.StatusPartialContent:
	case nethttp.StatusRequestedRangeNotSatisfiable:
		return 0, io.EOF
	case nethttp.StatusOK:
		return 0, ErrRangeUnsupported
	default:
		return 0, fmt.Errorf("range request failed: %s", resp.Status)
	}

	n, err := io.ReadFull(resp.Body, p[:expected])
	if err != nil {
		return n, err
	}
	if expected < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// probeSize asks for the content size with HEAD, falling back to a one-byte
// range probe for servers that omit Content-Length.
func (s *Source) probeSize(ctx context.Context) (int64, error) {
	req, err := s.newRequest(ctx, nethttp.MethodHead)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	drainClose(resp.Body)
	if resp.StatusCode != nethttp.StatusOK {
		return 0, fmt.Errorf("head %s: %s", s.url, resp.Status)
	}
	if resp.ContentLength >= 0 {
		return resp.ContentLength, nil
	}

	req, err = s.newRequest(ctx, nethttp.MethodGet)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", "bytes=0-0")
	resp, err = s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer drainClose(resp.Body)
	if resp.StatusCode != nethttp.StatusPartialContent {
		return -1, nil
	}
	return parseContentRange(resp.Header.Get("Content-Range"))
}

func (s *Source) newRequest(ctx context.Context, method string) (*nethttp.Request, error) {
	req, err := nethttp.NewRequestWithContext(ctx, method, s.url, nethttp.NoBody)
	if err != nil {
		return nil, err
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	// Byte offsets must refer to the stored representation.
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "identity")
	}
	return req, nil
}

func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body) //nolint:errcheck // best-effort drain for connection reuse
	_ = body.Close()
}

// parseContentRange extracts the total size from "bytes start-end/size".
func parseContentRange(value string) (int64, error) {
	value = strings.TrimSpace(value)
	rest, ok := strings.CutPrefix(value, "bytes ")
	if !ok {
		return 0, fmt.Errorf("invalid Content-Range %q", value)
	}
	_, total, ok := strings.Cut(rest, "/")
	if !ok || total == "*" {
		return 0, fmt.Errorf("invalid Content-Range %q", value)
	}
	size, err := strconv.ParseInt(total, 10, 64)
	if err != nil || size < 0 {
		return 0, fmt.Errorf("invalid Content-Range %q", value)
	}
	return size, nil
}
