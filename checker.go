package tarprobe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"runtime/debug"
	"sync"

	probecore "github.com/meigma/tarprobe/core"
	"github.com/meigma/tarprobe/internal/remote"
	"github.com/meigma/tarprobe/internal/sniff"
	"github.com/meigma/tarprobe/internal/stargz"
)

// extractorPath names the scanner in the Extractor property.
const extractorPath = "github.com/meigma/tarprobe/core"

// Checker checks inputs and assembles reports. It holds only configuration
// and is safe for concurrent use when its callbacks are.
type Checker struct {
	logger           *slog.Logger
	digests          []DigestKind
	progress         ProgressFunc
	entryFn          func(*Header) error
	decompress       bool
	maxDecoderMemory uint64
	module           ModuleInfo
	httpClient       *nethttp.Client
	httpHeaders      nethttp.Header
}

// NewChecker creates a Checker with the given options.
func NewChecker(opts ...Option) (*Checker, error) {
	c := &Checker{module: DefaultModuleInfo()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Check is a convenience wrapper that checks r with a new Checker.
func Check(ctx context.Context, location string, r io.Reader, opts ...Option) (*Report, error) {
	c, err := NewChecker(opts...)
	if err != nil {
		return nil, err
	}
	return c.Check(ctx, location, r)
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Checker) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Check reads r once and reports whether it is a well-formed TAR archive.
// If r implements io.Closer it is closed before Check returns.
//
// A malformed archive is not an error: it yields a report with WellFormed
// false and a Message. The error is non-nil only when ctx is done before
// the check completes.
func (c *Checker) Check(ctx context.Context, location string, r io.Reader) (*Report, error) {
	return c.check(ctx, location, r, nil, 0)
}

// CheckFile checks the regular file at path. For gzip inputs checked with
// decompression enabled, an eStargz table of contents is also probed.
func (c *Checker) CheckFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			c.log().Warn("close file failed", "path", path, "error", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	// Hide Close so the scan leaves the file open for the eStargz probe.
	return c.check(ctx, path, struct{ io.Reader }{f}, f, info.Size())
}

// CheckURL checks an archive served over HTTP. The body is streamed once;
// the eStargz probe, when it applies, uses range requests.
func (c *Checker) CheckURL(ctx context.Context, url string) (*Report, error) {
	opts := []remote.Option{remote.WithClient(c.httpClient)}
	for key, values := range c.httpHeaders {
		for _, v := range values {
			opts = append(opts, remote.WithHeader(key, v))
		}
	}
	src, err := remote.NewSource(ctx, url, opts...)
	if err != nil {
		return nil, err
	}
	body, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}

	var ra io.ReaderAt
	if src.Size() >= 0 {
		ra = src.ReaderAt(ctx)
	}
	return c.check(ctx, url, body, ra, src.Size())
}

func (c *Checker) check(ctx context.Context, location string, r io.Reader, ra io.ReaderAt, size int64) (*Report, error) {
	var (
		codec = sniff.CodecNone
		dec   io.Closer
	)
	opts := []probecore.Option{
		probecore.WithLogger(c.log()),
		probecore.WithDigests(c.digests...),
		probecore.WithProgress(c.progress),
		probecore.WithEntryFunc(c.entryFn),
	}
	if c.decompress {
		opts = append(opts, probecore.WithStreamFilter(func(raw io.Reader) (io.Reader, error) {
			rc, detected, err := sniff.Open(raw, sniff.Options{MaxMemory: c.maxDecoderMemory})
			codec = detected
			if err != nil {
				return nil, err
			}
			dec = rc
			return rc, nil
		}))
	}

	res, err := probecore.New(opts...).Scan(ctx, location, r)
	if dec != nil {
		if cerr := dec.Close(); cerr != nil {
			c.log().Warn("close decoder failed", "location", location, "error", cerr)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", location, err)
	}

	report := c.assemble(res, codec)
	if codec == sniff.CodecGzip && ra != nil && res.WellFormed {
		if toc, ok := stargz.TOCDigest(ra, size); ok {
			report.Metadata = append(report.Metadata, Property{Name: PropertyTOCDigest, Value: toc.String()})
		}
	}
	return report, nil
}

// assemble builds a report from a completed scan.
func (c *Checker) assemble(res *Result, codec sniff.Codec) *Report {
	report := &Report{
		Module:     c.module,
		Location:   res.Location,
		Format:     "TAR",
		WellFormed: res.WellFormed,
		Valid:      res.Valid,
		Result:     res,
		Metadata: []Property{
			{Name: PropertyExtractor, Value: extractorPath},
			{Name: PropertyVersion, Value: extractorVersion()},
		},
	}
	if len(c.module.Formats) > 0 {
		report.Format = c.module.Formats[0]
	}
	if res.Err != nil {
		report.Message = res.Err.Message()
	}

	if res.WellFormed {
		report.Version = res.Dialect.String()
		if len(c.module.MimeTypes) > 0 {
			report.MimeType = c.module.MimeTypes[0]
		}
		report.MediaType = codec.MediaType()
		report.Metadata = append(report.Metadata,
			Property{Name: PropertyCompressionType, Value: codec.String()},
			Property{Name: PropertyEntryCount, Value: res.Entries},
		)
	}

	for _, k := range res.Digests.Kinds() {
		report.Checksums = append(report.Checksums, Checksum{Type: k.String(), Value: res.Digests[k]})
	}
	report.Digest = res.Digests.OCIDigest()
	return report
}

var extractorVersion = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	if info.Main.Path == "github.com/meigma/tarprobe" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/meigma/tarprobe" {
			return dep.Version
		}
	}
	return "(devel)"
})
