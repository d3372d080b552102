// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe buffer for the password that
// rootwrite relays to the privilege-escalation helper.
//
// Buffer allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped.
//
// Because the memory is allocated outside the Go heap, the garbage
// collector never sees it and cannot copy or relocate it, so the
// password does not persist in memory after the write operation ends.
//
// Unlike a general-purpose secret store, this package permits empty
// secrets: some sudo configurations accept an empty password, and the
// prompt layer must be able to represent "the user pressed Enter on an
// empty field" as a submittable credential, distinct from dismissing
// the prompt. [Buffer.WriteLineTo] delivers the secret to the helper's
// stdin as a single newline-terminated write without copying it onto
// the heap.
package secret
