// Package mmap provides read-only memory-mapped file access.
//
// # Overview
//
// Memory mapping exposes a file's bytes as a contiguous slice without
// copying them through kernel buffers. csview parses CSV fields as views
// into that slice, so the mapping must stay open for as long as any view
// derived from it is in use.
//
// # Usage
//
//	m, err := mmap.Open("data.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to file contents
//	data := m.Bytes()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent read access. Close is idempotent and
// protected by an atomic flag; callers must ensure no goroutine touches
// Bytes() after Close returns.
package mmap
