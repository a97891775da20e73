package guard

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/pagekit/pagebuf/buffer"
	"github.com/pagekit/pagebuf/internal/xbin"
)

// Config configures a Guard. The zero value is usable: system
// allocator, default size ceiling, violations returned as errors.
type Config struct {
	// Base is the allocator being decorated. Nil means a fresh
	// buffer.System with no custom limit.
	Base buffer.Allocator

	// Limit is a soft ceiling on a single request in bytes. Zero or
	// negative means buffer.DefaultLimit.
	Limit int

	// Fatal escalates contract violations (bad size, double free,
	// corrupted header) to a panic instead of returning them.
	Fatal bool

	// Capture fills buf with a textual call-stack snapshot and returns
	// the number of bytes written. Nil means runtime.Stack for the
	// calling goroutine.
	Capture func(buf []byte) int

	// Log receives one debug record per Alloc and Free. Nil discards.
	Log *slog.Logger
}

// Guard decorates a base allocator with guard pages and a liveness
// header. See the package comment for the layout.
type Guard struct {
	base    buffer.Allocator
	limit   int
	fatal   bool
	capture func([]byte) int
	log     *slog.Logger
}

// Allocation pairs a user-visible region with the raw region backing
// it. It is produced by Guard.Alloc and consumed by Guard.Free.
type Allocation struct {
	// Data is the user region: len is the requested size, the base
	// address is page-aligned, and cap stops at the trailing guard page
	// so an append can never grow into it.
	Data []byte

	raw   []byte // leading guard page + user pages + trailing guard page
	pages int
}

// New returns a Guard over cfg.Base.
func New(cfg Config) *Guard {
	g := &Guard{
		base:    cfg.Base,
		limit:   cfg.Limit,
		fatal:   cfg.Fatal,
		capture: cfg.Capture,
		log:     cfg.Log,
	}
	if g.base == nil {
		g.base = &buffer.System{}
	}
	if g.limit <= 0 {
		g.limit = buffer.DefaultLimit
	}
	if g.capture == nil {
		g.capture = func(buf []byte) int { return runtime.Stack(buf, false) }
	}
	if g.log == nil {
		g.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// violation reports a contract violation according to the configured
// policy: panic when Fatal, plain error otherwise.
func (g *Guard) violation(err error) error {
	if g.fatal {
		panic(err)
	}
	return err
}

// Alloc obtains size usable bytes from the base allocator, padded with
// a guard page on each side. Returns an error wrapping
// buffer.ErrExhausted when the base allocator cannot satisfy the padded
// request.
func (g *Guard) Alloc(size int) (*Allocation, error) {
	if size <= 0 {
		return nil, g.violation(fmt.Errorf("%w: got %d", buffer.ErrBadSize, size))
	}
	if size > g.limit {
		return nil, g.violation(fmt.Errorf("%w: %d > %d", buffer.ErrTooLarge, size, g.limit))
	}

	page := buffer.PageSize()
	rounded, ok := xbin.AddOverflowSafe(size, page-1)
	if !ok {
		return nil, g.violation(fmt.Errorf("%w: %d bytes", buffer.ErrTooLarge, size))
	}
	pages := rounded/page + 2
	rawSize, ok := xbin.MulOverflowSafe(pages, page)
	if !ok {
		return nil, g.violation(fmt.Errorf("%w: %d pages", buffer.ErrTooLarge, pages))
	}

	raw, err := g.base.Alloc(rawSize)
	if err != nil {
		return nil, err
	}

	head := raw[:page]
	writeHeader(head, int64(size))
	recordStack(head, g.capture)

	// Header page keeps read access so InUse can probe the magic;
	// the trailing page needs none at all.
	if err := protectRO(head); err != nil {
		_ = g.base.Free(raw)
		return nil, fmt.Errorf("guard: protect leading page: %w", err)
	}
	if err := protectNone(raw[rawSize-page:]); err != nil {
		_ = unprotect(head)
		_ = g.base.Free(raw)
		return nil, fmt.Errorf("guard: protect trailing page: %w", err)
	}

	a := &Allocation{
		Data:  raw[page : page+size : rawSize-page],
		raw:   raw,
		pages: pages,
	}
	g.log.Debug("guard alloc", "base", fmt.Sprintf("%p", raw), "size", size, "pages", pages)
	return a, nil
}

// Free restores access to the guard pages, verifies the header is still
// marked live, clears the magic, and hands the raw region back to the
// base allocator. A second Free of the same record, or a record with a
// clobbered header, is a contract violation.
func (g *Guard) Free(a *Allocation) error {
	if a == nil {
		return nil
	}
	if a.raw == nil {
		return g.violation(fmt.Errorf("%w: already freed", ErrNotLive))
	}

	page := buffer.PageSize()
	raw := a.raw
	head := raw[:page]
	if err := unprotect(head); err != nil {
		return fmt.Errorf("guard: unprotect leading page: %w", err)
	}
	if err := unprotect(raw[len(raw)-page:]); err != nil {
		return fmt.Errorf("guard: unprotect trailing page: %w", err)
	}

	if magic := headerMagic(head); magic != magicLive {
		return g.violation(fmt.Errorf("%w: header magic %#x", ErrNotLive, magic))
	}

	// Overwrite the allocation-site snapshot with the free site, so a
	// later use-after-free report names the code that released the block.
	recordStack(head, g.capture)
	clearMagic(head)

	g.log.Debug("guard free", "base", fmt.Sprintf("%p", raw), "size", headerSize(head), "pages", a.pages)

	err := g.base.Free(raw)
	a.Data = nil
	a.raw = nil
	return err
}

// InUse reports whether a's header is still marked live. Read-only:
// never allocates, frees, or mutates the header.
func (g *Guard) InUse(a *Allocation) bool {
	if a == nil || a.raw == nil {
		return false
	}
	return headerMagic(a.raw[:buffer.PageSize()]) == magicLive
}

// Stack returns the most recent call-stack snapshot recorded in a's
// header: the allocation site while live, the free site afterwards.
// Valid only while the raw region is still mapped.
func (g *Guard) Stack(a *Allocation) string {
	if a == nil || a.raw == nil {
		return ""
	}
	return string(readStack(a.raw[:buffer.PageSize()]))
}
