package guard

import (
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekit/pagebuf/buffer"
)

func TestAllocLayout(t *testing.T) {
	page := buffer.PageSize()
	g := New(Config{})

	a, err := g.Alloc(100)
	require.NoError(t, err)
	require.NotNil(t, a)

	// User region: exact requested length, page-aligned base, cap
	// stopping at the trailing guard page.
	assert.Len(t, a.Data, 100)
	assert.Zero(t, uintptr(unsafe.Pointer(&a.Data[0]))%uintptr(page))
	assert.Equal(t, page, cap(a.Data))

	// The whole user region is writable.
	for i := range a.Data {
		a.Data[i] = 0xab
	}

	require.NoError(t, g.Free(a))
}

func TestAllocMultiPage(t *testing.T) {
	page := buffer.PageSize()
	g := New(Config{})

	// One byte past a page boundary costs a whole extra page.
	a, err := g.Alloc(page + 1)
	require.NoError(t, err)
	assert.Len(t, a.Data, page+1)
	assert.Equal(t, 2*page, cap(a.Data))

	require.NoError(t, g.Free(a))
}

func TestInUseTracksLifecycle(t *testing.T) {
	g := New(Config{})

	a, err := g.Alloc(64)
	require.NoError(t, err)
	assert.True(t, g.InUse(a))

	require.NoError(t, g.Free(a))
	assert.False(t, g.InUse(a))
	assert.False(t, g.InUse(nil))
}

func TestDoubleFreeIsViolation(t *testing.T) {
	g := New(Config{})

	a, err := g.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, g.Free(a))

	err = g.Free(a)
	assert.ErrorIs(t, err, ErrNotLive)
}

func TestFreeNilIsNoop(t *testing.T) {
	g := New(Config{})
	assert.NoError(t, g.Free(nil))
}

func TestBadSizeIsViolation(t *testing.T) {
	g := New(Config{})

	_, err := g.Alloc(0)
	assert.ErrorIs(t, err, buffer.ErrBadSize)

	_, err = g.Alloc(-1)
	assert.ErrorIs(t, err, buffer.ErrBadSize)
}

func TestLimitIsViolation(t *testing.T) {
	page := buffer.PageSize()
	g := New(Config{Limit: page})

	_, err := g.Alloc(page + 1)
	assert.ErrorIs(t, err, buffer.ErrTooLarge)

	a, err := g.Alloc(page)
	require.NoError(t, err)
	require.NoError(t, g.Free(a))
}

func TestPageMathOverflowRejected(t *testing.T) {
	g := New(Config{Limit: math.MaxInt})

	_, err := g.Alloc(math.MaxInt - 10)
	assert.ErrorIs(t, err, buffer.ErrTooLarge)
}

func TestFatalEscalatesToPanic(t *testing.T) {
	g := New(Config{Fatal: true})

	assert.Panics(t, func() { _, _ = g.Alloc(0) })

	a, err := g.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, g.Free(a))
	assert.Panics(t, func() { _ = g.Free(a) })
}

func TestCaptureCollaborator(t *testing.T) {
	var calls int
	capture := func(buf []byte) int {
		calls++
		return copy(buf, "snapshot site")
	}
	g := New(Config{Capture: capture})

	a, err := g.Alloc(64)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "capture runs once at alloc")
	assert.Equal(t, "snapshot site", g.Stack(a))

	require.NoError(t, g.Free(a))
	assert.Equal(t, 2, calls, "capture runs again at free")
}

func TestDefaultCaptureRecordsGoroutineStack(t *testing.T) {
	g := New(Config{})

	a, err := g.Alloc(64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(g.Stack(a), "goroutine "))

	require.NoError(t, g.Free(a))
}

func TestGuardOverCustomBase(t *testing.T) {
	// The guard is a decorator: any Allocator serves as the base.
	base := &buffer.System{Limit: buffer.DefaultLimit}
	g := New(Config{Base: base})

	a, err := g.Alloc(128)
	require.NoError(t, err)
	assert.True(t, g.InUse(a))
	require.NoError(t, g.Free(a))
}

func TestAllocFreeCycles(t *testing.T) {
	page := buffer.PageSize()
	g := New(Config{})

	for i := 0; i < 200; i++ {
		a, err := g.Alloc(page)
		require.NoError(t, err)
		a.Data[0] = 0x01
		a.Data[page-1] = 0x02
		require.NoError(t, g.Free(a))
	}
}
