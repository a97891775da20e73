package guard

import "github.com/pagekit/pagebuf/internal/xbin"

// Header layout inside the leading guard page, little-endian:
//
//	0x00  u64  requested size in bytes
//	0x08  u32  magic: magicLive while allocated, 0 after Free
//	0x0c  u32  length of the stack snapshot
//	0x10  ...  stack snapshot (up to stackCap bytes)
const (
	offSize     = 0x00
	offMagic    = 0x08
	offStackLen = 0x0c
	offStack    = 0x10

	magicLive = 0x1337
	stackCap  = 3072
)

func writeHeader(head []byte, size int64) {
	xbin.PutU64LE(head[offSize:], uint64(size))
	xbin.PutU32LE(head[offMagic:], magicLive)
}

func headerSize(head []byte) int64 {
	return int64(xbin.U64LE(head[offSize:]))
}

func headerMagic(head []byte) uint32 {
	return xbin.U32LE(head[offMagic:])
}

func clearMagic(head []byte) {
	xbin.PutU32LE(head[offMagic:], 0)
}

// stackArea clamps the snapshot area so the header always fits in one
// page, even on targets with pages smaller than stackCap.
func stackArea(head []byte) []byte {
	end := offStack + stackCap
	if end > len(head) {
		end = len(head)
	}
	return head[offStack:end]
}

// recordStack overwrites the snapshot area with a fresh capture. Called
// on Alloc (allocation site) and again on Free (free site), so the
// header of a double-freed block points at the first free.
func recordStack(head []byte, capture func([]byte) int) {
	area := stackArea(head)
	n := capture(area)
	if n < 0 {
		n = 0
	}
	if n > len(area) {
		n = len(area)
	}
	xbin.PutU32LE(head[offStackLen:], uint32(n))
}

func readStack(head []byte) []byte {
	area := stackArea(head)
	n := int(xbin.U32LE(head[offStackLen:]))
	if n > len(area) {
		n = len(area)
	}
	return area[:n]
}
