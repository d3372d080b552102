// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds a password in memory that is locked against swapping,
// excluded from core dumps, and zeroed on close. The backing memory is
// allocated via mmap outside the Go heap.
//
// A Buffer may hold a zero-length secret. An empty password is a valid
// credential to submit to the helper; only the prompt layer's explicit
// dismissal means "no credential".
//
// A Buffer must not be copied after creation. After Close, any access
// to the buffer's contents panics.
type Buffer struct {
	mu sync.Mutex

	// data is the mmap region. Its capacity is always length+1 so that
	// WriteLineTo can append the newline terminator in place.
	data   []byte
	length int
	closed bool
}

// FromBytes creates a buffer holding a copy of source, then zeros
// source in place so the caller's slice no longer holds the secret.
// A nil or empty source produces a valid empty secret.
func FromBytes(source []byte) (*Buffer, error) {
	// One extra byte for the newline terminator written by WriteLineTo.
	// mmap rounds up to a page anyway; the explicit +1 documents the
	// invariant rather than relying on page slack.
	region, err := mapLocked(len(source) + 1)
	if err != nil {
		Zero(source)
		return nil, err
	}

	copy(region, source)
	Zero(source)

	return &Buffer{
		data:   region,
		length: len(source),
	}, nil
}

// mapLocked allocates size bytes of anonymous memory outside the Go
// heap, locked into RAM and excluded from core dumps.
func mapLocked(size int) ([]byte, error) {
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return region, nil
}

// Bytes returns the secret data. The returned slice points directly
// into the mmap region — do not hold references to it beyond the
// lifetime of the Buffer. Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data[:b.length]
}

// Len returns the length of the secret. Zero is a legal length.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// WriteLineTo writes the secret followed by a single newline to w as
// one write call. The helper reads the credential line-at-a-time from
// its input stream, so the newline is part of the submission, not
// decoration. The newline is appended inside the locked region and
// zeroed again before returning; the secret never touches the Go heap.
//
// Panics if the buffer has been closed.
func (b *Buffer) WriteLineTo(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: write from closed buffer")
	}

	b.data[b.length] = '\n'
	_, err := w.Write(b.data[:b.length+1])
	b.data[b.length] = 0
	if err != nil {
		return fmt.Errorf("secret: writing credential line: %w", err)
	}
	return nil
}

// Close zeros the buffer contents and unmaps the memory. Close is
// idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)

	var firstError error
	if err := unix.Munlock(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}

	b.data = nil
	b.length = 0
	return firstError
}

// Zero overwrites every byte of data with zeroes. Use it on transient
// heap slices (prompt output, file reads) once their contents have
// been copied into a Buffer.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
