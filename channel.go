// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrWouldBlock is returned by Read on a non-blocking channel when
	// the kernel queue holds no events.
	ErrWouldBlock = errors.New("no events pending")

	// ErrPathTooLong is returned before any kernel call when a resolved
	// path exceeds the platform limit.
	ErrPathTooLong = errors.New("path exceeds PATH_MAX")
)

// Channel owns exactly one inotify instance. It is created by Open, used
// for the duration of a watch session and torn down exactly once by
// Close. A Channel holds no table state of its own; pairing descriptors
// with paths is the Table's job.
//
// A Channel is not safe for concurrent use. Integrators that need
// multi-threaded access must guard the whole channel+table pair behind
// one mutual-exclusion boundary, since watch registration and reads both
// touch kernel state and table state together.
type Channel struct {
	fd       int
	nonblock bool
	closed   bool
}

// Open requests a new inotify instance with the given creation flags.
// The kernel refusing the instance (descriptor exhaustion, resource
// limits) is surfaced as an error; there is no channel to release in
// that case.
func Open(flags CreateFlags) (*Channel, error) {
	fd, err := unix.InotifyInit1(int(flags))
	if err != nil {
		return nil, fmt.Errorf("inotify: create instance: %w", err)
	}
	dbgprintf("Open(%v): fd=%d", flags, fd)
	return &Channel{fd: fd, nonblock: flags.Has(InNonblock)}, nil
}

// Nonblock reports whether the channel was opened with InNonblock.
func (ch *Channel) Nonblock() bool { return ch.nonblock }

// AddWatch registers interest in path for the events in mask and returns
// the kernel-assigned watch descriptor. Relative paths are resolved
// against the working directory before the kernel call; resolution
// failure and over-long paths fail here, so no partial kernel-side
// registration occurs. Registering a path the instance already watches
// returns the same descriptor again, per kernel contract.
func (ch *Channel) AddWatch(path string, mask Mask) (int32, error) {
	abs, err := cleanpath(path)
	if err != nil {
		return -1, fmt.Errorf("inotify: resolve %q: %w", path, err)
	}
	if len(abs) >= unix.PathMax {
		return -1, fmt.Errorf("inotify: %w: %q", ErrPathTooLong, abs)
	}
	wd, err := unix.InotifyAddWatch(ch.fd, abs, uint32(mask))
	if err != nil {
		return -1, fmt.Errorf("inotify: add watch %q: %w", abs, err)
	}
	dbgprintf("AddWatch(%q, %v): wd=%d", abs, mask, wd)
	return int32(wd), nil
}

// RemoveWatch asks the kernel to cancel interest for wd. The request is
// fire-and-forget: success does not mean the stream is quiet, a final
// IN_IGNORED event for wd still arrives through Read.
func (ch *Channel) RemoveWatch(wd int32) error {
	if _, err := unix.InotifyRmWatch(ch.fd, uint32(wd)); err != nil {
		return fmt.Errorf("inotify: remove watch %d: %w", wd, err)
	}
	dbgprintf("RemoveWatch(%d)", wd)
	return nil
}

// Read performs one read of the pending event queue into buf. It blocks
// until at least one event is available unless the channel was opened
// with InNonblock, in which case an empty queue yields ErrWouldBlock.
// The kernel never completes a read with zero bytes; observing one is an
// invariant violation and panics.
func (ch *Channel) Read(buf []byte) (int, error) {
	n, err := unix.Read(ch.fd, buf)
	switch {
	case errors.Is(err, unix.EAGAIN):
		return 0, ErrWouldBlock
	case err != nil:
		return 0, fmt.Errorf("inotify: read: %w", err)
	case n == 0:
		panic("inotify: zero-byte read from inotify descriptor")
	}
	dbgprintf("Read: %d bytes", n)
	return n, nil
}

// Close releases the instance descriptor. Closing a channel twice is a
// caller bug and panics.
func (ch *Channel) Close() error {
	if ch.closed {
		panic("inotify: channel closed twice")
	}
	ch.closed = true
	if err := unix.Close(ch.fd); err != nil {
		return fmt.Errorf("inotify: close: %w", err)
	}
	dbgprintf("Close: fd=%d", ch.fd)
	return nil
}
