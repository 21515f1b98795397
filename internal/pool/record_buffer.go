// Package pool provides the allocation helpers backing mseedpack's two
// buffer-lifetime disciplines: geometric growth of a library-owned
// record buffer, and reuse of the scratch int32 slice used to
// precompute Steim differences.
package pool

import "sync"

// MallocIncrement is the number of records a library-owned output buffer
// grows by each time it fills, matching qlib2's MALLOC_INCREMENT constant.
const MallocIncrement = 1000

// RecordBuffer is a growable, record-count-aware byte buffer used for
// library-owned packing.
// Unlike a general-purpose bytes.Buffer, it grows in whole-blksize batches
// so that "capacity for N more records" is always an exact, cheap check.
type RecordBuffer struct {
	buf     []byte
	blksize int
	records int // number of complete blksize-sized records currently held
}

// NewRecordBuffer creates an empty RecordBuffer for records of the given
// block size.
func NewRecordBuffer(blksize int) *RecordBuffer {
	return &RecordBuffer{blksize: blksize}
}

// Records returns the number of complete records currently allocated.
func (r *RecordBuffer) Records() int { return r.records }

// Bytes returns the buffer trimmed to exactly Records()*blksize bytes,
// so a returned library-owned buffer never carries uncommitted slack.
func (r *RecordBuffer) Bytes() []byte { return r.buf[:r.records*r.blksize] }

// RecordAt returns the byte region for record index i (0-based). i must be
// less than Records().
func (r *RecordBuffer) RecordAt(i int) []byte {
	start := i * r.blksize
	return r.buf[start : start+r.blksize]
}

// EnsureNext grows the buffer by MallocIncrement records if the next record
// slot (index Records()) does not already exist. It returns false if the
// growth allocation failed (it never does for make(), but the return value
// keeps the call site symmetric with real allocator-failure handling).
func (r *RecordBuffer) EnsureNext() bool {
	needed := (r.records + 1) * r.blksize
	if needed <= len(r.buf) {
		return true
	}

	grown := make([]byte, (r.records+MallocIncrement)*r.blksize)
	copy(grown, r.buf)
	r.buf = grown

	return true
}

// NextRecord returns the byte region for the next, not-yet-committed
// record slot. EnsureNext must have been called first.
func (r *RecordBuffer) NextRecord() []byte {
	start := r.records * r.blksize
	return r.buf[start : start+r.blksize]
}

// CommitRecord marks the next record slot as populated, advancing Records().
func (r *RecordBuffer) CommitRecord() {
	r.records++
}

// diffSlicePool pools the int32 scratch slices used to hold Steim
// differences across calls, avoiding one allocation per PackSteim1/2 call
// on the common streaming path.
var diffSlicePool = sync.Pool{
	New: func() any { s := make([]int32, 0); return &s },
}

// GetDiffSlice retrieves an int32 slice of exactly length n from the pool.
// The caller must invoke the returned cleanup func (typically via defer)
// once the slice is no longer needed.
func GetDiffSlice(n int) ([]int32, func()) {
	ptr, _ := diffSlicePool.Get().(*[]int32)
	s := (*ptr)[:0]

	if cap(s) < n {
		s = make([]int32, n)
	} else {
		s = s[:n]
	}
	*ptr = s

	return s, func() { diffSlicePool.Put(ptr) }
}
