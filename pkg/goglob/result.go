package goglob

import (
	"sort"
	"unsafe"
)

// OwnershipTag records how a MatchResult's path bytes were produced, which
// in turn dictates what Release (and, for FFI consumers, CABI) must free
// (spec §3, §4.6).
type OwnershipTag int

const (
	// Owned means every path's bytes were copied into this result's own
	// storage (the filesystem-walking Glob entry point always produces
	// this).
	Owned OwnershipTag = iota
	// Borrowed means every path aliases caller-supplied memory (MatchPaths,
	// the borrowed-mode entry point).
	Borrowed
	// Mixed means the result holds both kinds of slot, i.e. both
	// AppendOwned and AppendBorrowed were called on the same table.
	Mixed
)

func (t OwnershipTag) String() string {
	switch t {
	case Owned:
		return "OWNED"
	case Borrowed:
		return "BORROWED"
	case Mixed:
		return "MIXED"
	default:
		return "UNKNOWN"
	}
}

type resultEntry struct {
	path  string
	owned bool
}

// MatchResult is the public output structure shared by Glob and MatchPaths:
// an ordered path table with a reserved-offset prefix and an ownership tag
// (spec §3 MatchResult, §4.6).
type MatchResult struct {
	entries       []resultEntry
	offsetReserve int
	tag           OwnershipTag
}

// NewMatchResult returns an empty result table.
func NewMatchResult() *MatchResult {
	return &MatchResult{}
}

// Reserve pre-fills offsetReserve leading null slots (DOOFFS).
func (r *MatchResult) Reserve(offsetReserve int) {
	r.offsetReserve = offsetReserve
	r.entries = append(make([]resultEntry, offsetReserve, offsetReserve+len(r.entries)), r.entries...)
}

// OffsetReserve is the number of leading null slots.
func (r *MatchResult) OffsetReserve() int { return r.offsetReserve }

// Count is the number of matched paths (excludes the reserved prefix).
func (r *MatchResult) Count() int { return len(r.entries) - r.offsetReserve }

// AppendOwned copies path into the result's own storage.
func (r *MatchResult) AppendOwned(path string) {
	r.entries = append(r.entries, resultEntry{path: path, owned: true})
	r.recomputeTag()
}

// AppendBorrowed records path as aliasing caller-owned memory.
func (r *MatchResult) AppendBorrowed(path string) {
	r.entries = append(r.entries, resultEntry{path: path, owned: false})
	r.recomputeTag()
}

func (r *MatchResult) recomputeTag() {
	hasOwned, hasBorrowed := false, false
	for _, e := range r.entries[r.offsetReserve:] {
		if e.owned {
			hasOwned = true
		} else {
			hasBorrowed = true
		}
	}
	switch {
	case hasOwned && hasBorrowed:
		r.tag = Mixed
	case hasBorrowed:
		r.tag = Borrowed
	default:
		r.tag = Owned
	}
}

// OwnershipTag reports how release must treat this result's storage.
func (r *MatchResult) OwnershipTag() OwnershipTag { return r.tag }

// Mark is where a region starts for SortRegion/DedupRegion — callers call
// Mark before adding a batch (e.g. one brace alternative's matches, or one
// APPEND call's additions) and pass it back once that batch is complete.
func (r *MatchResult) Mark() int { return len(r.entries) }

// SortRegion sorts entries[from:] lexicographically by byte value,
// matching the driver's "sort the newly appended region" post-processing
// step (spec §4.5 step 5) rather than the whole accumulated table.
func (r *MatchResult) SortRegion(from int) {
	region := r.entries[from:]
	sort.Slice(region, func(i, j int) bool { return region[i].path < region[j].path })
}

// DedupRegion removes duplicate paths from entries[from:], keeping the
// first occurrence, for when brace expansion (or overlapping recursive
// descents) could have produced the same path twice. The existing prefix
// entries[:from] seeds the seen-set so a path already present from an
// earlier APPEND (e.g. a repeated Glob call against an unchanged
// filesystem) is recognized as a duplicate too, keeping APPEND idempotent
// (spec §8 testable property 6) instead of only deduping within the batch
// just added.
func (r *MatchResult) DedupRegion(from int) {
	seen := make(map[string]struct{}, len(r.entries))
	for _, e := range r.entries[:from] {
		seen[e.path] = struct{}{}
	}
	out := r.entries[:from]
	for _, e := range r.entries[from:] {
		if _, ok := seen[e.path]; ok {
			continue
		}
		seen[e.path] = struct{}{}
		out = append(out, e)
	}
	r.entries = out
	r.recomputeTag()
}

// Paths returns the matched paths in order (excludes the reserved prefix).
func (r *MatchResult) Paths() []string {
	out := make([]string, 0, r.Count())
	for _, e := range r.entries[r.offsetReserve:] {
		out = append(out, e.path)
	}
	return out
}

// Lengths returns the byte length of each path, parallel to Paths.
func (r *MatchResult) Lengths() []int {
	out := make([]int, 0, r.Count())
	for _, e := range r.entries[r.offsetReserve:] {
		out = append(out, len(e.path))
	}
	return out
}

// Seal is a no-op for the Go-native view (Paths/Lengths already reflect a
// sealed table); it exists so callers mirroring the spec's operation list
// have a named step before handing a result across the FFI boundary, where
// CABI appends the actual trailing null-pointer sentinel.
func (r *MatchResult) Seal() {}

// Release drops this result's storage. In a garbage-collected runtime
// there is no explicit free, but Release is still the single place a
// caller reliably relinquishes a MatchResult, mirroring the owned/borrowed
// release contract real FFI consumers depend on (CABIResult.Release does
// the work that actually matters: releasing the keep-alive references that
// pin the C-shaped arrays).
func (r *MatchResult) Release() {
	r.entries = nil
	r.offsetReserve = 0
	r.tag = Owned
}

// CABIResult is the C-ABI-compatible view of a MatchResult (spec §6): a
// null-pointer-terminated array of NUL-terminated byte strings, a parallel
// length array, and the DOOFFS prefix count. It is built with unsafe.Pointer
// rather than cgo so this module has no C toolchain dependency; a caller
// that does use cgo can pass Paths/Lengths directly as char**/int64* across
// the boundary.
type CABIResult struct {
	Count         int64
	OffsetReserve int64
	Paths         **byte
	Lengths       *int64

	ptrsKeepAlive    []*byte
	lengthsKeepAlive []int64
}

// CABI builds the C-ABI view of r. The returned value keeps its backing
// arrays alive via unexported slice fields; call Release when done.
func (r *MatchResult) CABI() *CABIResult {
	n := len(r.entries)
	ptrs := make([]*byte, n+1) // +1: seal()'s trailing null sentinel
	lengths := make([]int64, n)

	for i, e := range r.entries {
		if i < r.offsetReserve {
			continue // reserved slot: stays null
		}
		buf := make([]byte, len(e.path)+1)
		copy(buf, e.path)
		ptrs[i] = &buf[0]
		lengths[i] = int64(len(e.path))
	}

	return &CABIResult{
		Count:            int64(r.Count()),
		OffsetReserve:    int64(r.offsetReserve),
		Paths:            (**byte)(unsafe.Pointer(&ptrs[0])),
		Lengths:          (*int64)(unsafe.Pointer(&lengths[0])),
		ptrsKeepAlive:    ptrs,
		lengthsKeepAlive: lengths,
	}
}

// Release drops the pointer array, the length array and every path buffer.
// CABI copies each path into its own NUL-terminated buffer whatever the
// result's tag, so tag does not change what Release drops; a Borrowed
// result's C view does not alias the caller's input strings.
func (c *CABIResult) Release(tag OwnershipTag) {
	c.ptrsKeepAlive = nil
	c.lengthsKeepAlive = nil
	c.Paths = nil
	c.Lengths = nil
}
