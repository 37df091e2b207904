package tarprobe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/meigma/tarprobe/core/internal/file"
	"github.com/meigma/tarprobe/core/internal/sizing"
)

// drainBufferSize is the chunk size used when reading the rest of the input
// for digests.
const drainBufferSize = 32 * 1024

// Scanner checks TAR archives. A Scanner holds only configuration; one
// Scanner may run any number of scans, including concurrently, provided
// the configured callbacks are safe for that.
type Scanner struct {
	logger   *slog.Logger
	digests  []DigestKind
	progress ProgressFunc
	entryFn  func(*Header) error
	filter   func(io.Reader) (io.Reader, error)
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Scanner) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Scan reads the archive in r from its current position in a single forward
// pass. location identifies the input in logs and in the Result.
//
// Format defects and read failures are not returned as errors: they end the
// scan and are recorded in Result.Err. The returned error is non-nil only
// when ctx is done before the scan completes; the Result is then marked
// Aborted and is inconclusive.
//
// If r implements io.Closer it is closed exactly once before Scan returns.
func (s *Scanner) Scan(ctx context.Context, location string, r io.Reader) (*Result, error) {
	if c, ok := r.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				s.log().Warn("close input failed", "location", location, "error", err)
			}
		}()
	}

	sc := &scan{Scanner: s, res: &Result{Location: location}}
	var raw io.Reader = r
	if len(s.digests) > 0 {
		sc.acc = NewAccumulator(s.digests...)
		raw = io.TeeReader(r, sc.acc)
	}
	sc.counted = &file.CountingReader{R: raw}
	return sc.run(ctx)
}

// scanState tracks where a scan is in its life cycle.
type scanState uint8

const (
	stateStart scanState = iota
	stateReading
	stateEnded
	stateFailed
	stateDone
)

// scan holds the state of a single Scan call.
type scan struct {
	*Scanner
	res     *Result
	acc     *Accumulator
	counted *file.CountingReader
	block   Block
}

func (sc *scan) run(ctx context.Context) (*Result, error) {
	var (
		r       io.Reader
		skip    int64
		classed bool
	)

	for state := stateStart; state != stateDone; {
		switch state {
		case stateStart:
			var err error
			if r, err = sc.open(); err != nil {
				sc.res.Entries++
				sc.fail(err)
				state = stateFailed
				continue
			}
			state = stateReading

		case stateReading:
			if err := ctx.Err(); err != nil {
				return sc.abort(err)
			}
			h, end, err := sc.next(r, skip)
			switch {
			case err != nil:
				sc.fail(err)
				state = stateFailed
				continue
			case end:
				state = stateEnded
				continue
			}
			if !classed {
				sc.res.Dialect = Classify(h, &sc.block)
				classed = true
			}
			if skip, err = sc.accept(h); err != nil {
				sc.fail(err)
				state = stateFailed
			}

		case stateEnded:
			sc.res.WellFormed = true
			sc.res.Valid = true
			state = stateDone

		case stateFailed:
			state = stateDone
		}
	}

	if err := sc.finish(ctx); err != nil {
		return sc.abort(err)
	}
	return sc.res, nil
}

// open applies the configured stream filter to the counted raw input.
func (sc *scan) open() (io.Reader, error) {
	if sc.filter == nil {
		return sc.counted, nil
	}
	r, err := sc.filter(sc.counted)
	if err != nil {
		return nil, &StreamError{Err: fmt.Errorf("open stream: %w", err)}
	}
	return r, nil
}

// next skips the previous entry's payload and reads the next header.
// It reports end=true for a zero-filled block or a clean end of input at a
// block boundary. Every other outcome counts as an entry attempt.
func (sc *scan) next(r io.Reader, skip int64) (h *Header, end bool, err error) {
	if err := file.Skip(r, skip); err != nil {
		sc.res.Entries++
		return nil, false, readError("entry payload", err)
	}

	if err := file.ReadBlock(r, sc.block[:]); err != nil {
		if errors.Is(err, io.EOF) {
			sc.log().Debug("input ended without end-of-archive block",
				"location", sc.res.Location, "entries", sc.res.Entries)
			return nil, true, nil
		}
		sc.res.Entries++
		return nil, false, readError("header block", err)
	}
	if sc.block.IsZero() {
		sc.res.EndMarker = true
		return nil, true, nil
	}

	sc.res.Entries++
	h, err = DecodeHeader(&sc.block)
	if err != nil {
		return nil, false, err
	}
	h.Index = sc.res.Entries
	return h, false, nil
}

// accept records a decoded header and returns the number of payload bytes,
// including block padding, to skip before the next header.
func (sc *scan) accept(h *Header) (int64, error) {
	sc.log().Debug("entry",
		"location", sc.res.Location,
		"entry", h.Index,
		"name", h.Path(),
		"typeflag", string(h.Typeflag),
		"size", h.Size)

	if sc.entryFn != nil {
		if err := sc.entryFn(h); err != nil {
			return 0, &StreamError{Err: fmt.Errorf("entry callback: %w", err)}
		}
	}
	sc.report(StageScanning, h.Path())

	skip, err := sizing.PaddedSize(h.Size, ErrSizeOverflow)
	if err != nil {
		return 0, &HeaderError{Field: "size", Err: fmt.Errorf("%w: %d", err, h.Size)}
	}
	return skip, nil
}

func (sc *scan) fail(err error) {
	sc.res.Err = newErrorRecord(sc.res.Entries, err)
	sc.log().Debug("scan failed",
		"location", sc.res.Location,
		"entry", sc.res.Entries,
		"kind", sc.res.Err.Kind.String(),
		"error", err)
}

func (sc *scan) abort(err error) (*Result, error) {
	sc.res.Aborted = true
	sc.res.Bytes = sc.counted.N
	sc.log().Info("scan aborted", "location", sc.res.Location, "entries", sc.res.Entries)
	return sc.res, err
}

// finish reads any remaining input for digests and logs the outcome. It
// returns the context error if the scan is cancelled while draining; the
// header verdict is kept but no digests are attached.
func (sc *scan) finish(ctx context.Context) error {
	if sc.acc != nil {
		sc.report(StageDraining, "")
		if err := drain(ctx, sc.counted); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sc.log().Warn("digest input incomplete", "location", sc.res.Location, "error", err)
			sc.res.Digests = DigestSet{}
		} else {
			sc.res.Digests = sc.acc.Sum()
		}
	}
	sc.res.Bytes = sc.counted.N
	sc.report(StageDone, "")

	sc.log().Info("scan complete",
		"location", sc.res.Location,
		"entries", sc.res.Entries,
		"dialect", sc.res.Dialect.String(),
		"well_formed", sc.res.WellFormed)
	return nil
}

func (sc *scan) report(stage ProgressStage, name string) {
	if sc.progress == nil {
		return
	}
	sc.progress(ProgressEvent{
		Stage:       stage,
		Name:        name,
		EntriesDone: sc.res.Entries,
		BytesDone:   sc.counted.N,
	})
}

// drain reads r to the end, checking ctx between chunks.
func drain(ctx context.Context, r io.Reader) error {
	buf := make([]byte, drainBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := r.Read(buf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readError converts a read failure into a *StreamError, mapping a short
// read to ErrTruncated.
func readError(what string, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &StreamError{Err: fmt.Errorf("%w in %s", ErrTruncated, what)}
	}
	return &StreamError{Err: fmt.Errorf("read %s: %w", what, err)}
}
