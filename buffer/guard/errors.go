package guard

import "errors"

// ErrNotLive indicates a Free of an allocation whose header is no
// longer marked live: a double free, memory corruption, or a record not
// produced by this allocator.
var ErrNotLive = errors.New("guard: allocation not live")
