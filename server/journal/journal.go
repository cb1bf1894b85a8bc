// Package journal records the hand pass output of every tick so a session can
// be played back without re-running the simulation. A journal is a
// zstd-compressed stream of msgpack values: one Header, then one TickRecord
// per tick.
package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/automoto/godhand/components"
	"github.com/google/uuid"
	"github.com/hashicorp/go-msgpack/v2/codec"
	"github.com/klauspost/compress/zstd"
)

// FormatVersion is bumped whenever Header or TickRecord change shape.
const FormatVersion = 1

// Extension is appended to every journal file name.
const Extension = ".journal.zst"

type Header struct {
	Version   int
	SessionID string
	TickRate  int
	Level     string
}

type TickRecord struct {
	Tick  uint64
	Hands []components.HandRecord
}

var ErrVersion = errors.New("journal: unsupported format version")

// Writer appends tick records to a journal file.
type Writer struct {
	mu     sync.Mutex
	path   string
	header Header

	f   *os.File
	zw  *zstd.Encoder
	bw  *bufio.Writer
	enc *codec.Encoder
}

// Create starts a new journal in dir, named after the session id. An empty
// session id gets a fresh one.
func Create(dir, sessionID string, tickRate int, level string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal dir: %w", err)
	}
	h := newHeader(sessionID, tickRate, level)
	path := filepath.Join(dir, h.SessionID+Extension)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	w, err := newWriter(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	w.path = path
	return w, nil
}

// NewWriter writes a journal to out. The caller owns out.
func NewWriter(out io.Writer, sessionID string, tickRate int, level string) (*Writer, error) {
	return newWriter(out, newHeader(sessionID, tickRate, level))
}

func newHeader(sessionID string, tickRate int, level string) Header {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return Header{
		Version:   FormatVersion,
		SessionID: sessionID,
		TickRate:  tickRate,
		Level:     level,
	}
}

func newWriter(out io.Writer, h Header) (*Writer, error) {
	zw, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	bw := bufio.NewWriterSize(zw, 64*1024)
	w := &Writer{
		header: h,
		zw:     zw,
		bw:     bw,
		enc:    codec.NewEncoder(bw, &codec.MsgpackHandle{}),
	}
	if err := w.enc.Encode(h); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

func (w *Writer) Header() Header { return w.header }
func (w *Writer) Path() string   { return w.path }

// Append encodes one tick.
func (w *Writer) Append(rec TickRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return errors.New("journal: writer closed")
	}
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("append tick %d: %w", rec.Tick, err)
	}
	return nil
}

// Close flushes the stream and closes the file, if the writer owns one.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return nil
	}
	w.enc = nil

	var errs []error
	if err := w.bw.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := w.zw.Close(); err != nil {
		errs = append(errs, err)
	}
	if w.f != nil {
		if err := w.f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reader reads tick records back in order.
type Reader struct {
	header Header
	f      *os.File
	zr     *zstd.Decoder
	dec    *codec.Decoder
}

// Open opens a journal file for playback.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewReader reads a journal from in and decodes its header.
func NewReader(in io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	r := &Reader{
		zr:  zr,
		dec: codec.NewDecoder(bufio.NewReader(zr), &codec.MsgpackHandle{}),
	}
	if err := r.dec.Decode(&r.header); err != nil {
		zr.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	if r.header.Version != FormatVersion {
		zr.Close()
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.header.Version)
	}
	return r, nil
}

func (r *Reader) Header() Header { return r.header }

// Next returns the next tick. It returns io.EOF after the last one.
func (r *Reader) Next() (TickRecord, error) {
	var rec TickRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return TickRecord{}, io.EOF
		}
		return TickRecord{}, fmt.Errorf("read tick: %w", err)
	}
	return rec, nil
}

func (r *Reader) Close() error {
	r.zr.Close()
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}
