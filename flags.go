// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import (
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// CreateFlags select options for a new inotify instance. They occupy a
// parameter space separate from the per-watch event Mask.
type CreateFlags uint32

const (
	InNonblock = CreateFlags(unix.IN_NONBLOCK) // Reads return ErrWouldBlock instead of blocking
	InCloexec  = CreateFlags(unix.IN_CLOEXEC)  // Descriptor is closed across exec
)

// Union returns the flags present in either operand.
func (f CreateFlags) Union(other CreateFlags) CreateFlags { return f | other }

// Intersect returns the flags present in both operands.
func (f CreateFlags) Intersect(other CreateFlags) CreateFlags { return f & other }

// Has reports whether every flag in bits is set in f.
func (f CreateFlags) Has(bits CreateFlags) bool { return f&bits == bits }

// Mask is a bit-field over the inotify event space. A Mask passed to a
// watch registration selects events of interest; a Mask carried by a
// decoded Event describes what happened. Reserved bit positions are
// carried through untouched, so any raw 32-bit kernel value round-trips.
type Mask uint32

// Watchable events, one bit each.
const (
	InAccess       = Mask(unix.IN_ACCESS)        // File was accessed
	InModify       = Mask(unix.IN_MODIFY)        // File was modified
	InAttrib       = Mask(unix.IN_ATTRIB)        // Metadata changed
	InCloseWrite   = Mask(unix.IN_CLOSE_WRITE)   // Writtable file was closed
	InCloseNowrite = Mask(unix.IN_CLOSE_NOWRITE) // Unwrittable file closed
	InOpen         = Mask(unix.IN_OPEN)          // File was opened
	InMovedFrom    = Mask(unix.IN_MOVED_FROM)    // File was moved from X
	InMovedTo      = Mask(unix.IN_MOVED_TO)      // File was moved to Y
	InCreate       = Mask(unix.IN_CREATE)        // Subfile was created
	InDelete       = Mask(unix.IN_DELETE)        // Subfile was deleted
	InDeleteSelf   = Mask(unix.IN_DELETE_SELF)   // Self was deleted
	InMoveSelf     = Mask(unix.IN_MOVE_SELF)     // Self was moved
)

// Bits set only by the kernel, never requested directly.
const (
	InIgnored   = Mask(unix.IN_IGNORED)    // Watch was removed, final event for its descriptor
	InIsdir     = Mask(unix.IN_ISDIR)      // Subject of the event is a directory
	InQOverflow = Mask(unix.IN_Q_OVERFLOW) // Kernel queue overflowed, events were dropped
	InUnmount   = Mask(unix.IN_UNMOUNT)    // Backing filesystem was unmounted
)

// Watch behavior bits. They shape how a registration behaves and are
// never reported back in decoded events.
const (
	InDontFollow = Mask(unix.IN_DONT_FOLLOW) // Do not dereference a symlink path
	InExclUnlink = Mask(unix.IN_EXCL_UNLINK) // Stop reporting for unlinked children
	InMaskAdd    = Mask(unix.IN_MASK_ADD)    // Add to an existing watch mask instead of replacing
	InMaskCreate = Mask(unix.IN_MASK_CREATE) // Fail if the path is already watched
	InOneshot    = Mask(unix.IN_ONESHOT)     // Remove the watch after one event
	InOnlydir    = Mask(unix.IN_ONLYDIR)     // Fail unless the path is a directory
)

// Unions of semantically related bits.
const (
	InClose     = Mask(unix.IN_CLOSE)      // Both close variants
	InMove      = Mask(unix.IN_MOVE)       // Both halves of a rename pair
	InAllEvents = Mask(unix.IN_ALL_EVENTS) // Every watchable event
)

// Union returns the bits present in either mask.
func (m Mask) Union(other Mask) Mask { return m | other }

// Intersect returns the bits present in both masks.
func (m Mask) Intersect(other Mask) Mask { return m & other }

// Has reports whether every bit in bits is set in m.
func (m Mask) Has(bits Mask) bool { return m&bits == bits }

// masknames is ordered by bit position so String output is stable.
var masknames = []struct {
	bit  Mask
	name string
}{
	{InAccess, "IN_ACCESS"},
	{InModify, "IN_MODIFY"},
	{InAttrib, "IN_ATTRIB"},
	{InCloseWrite, "IN_CLOSE_WRITE"},
	{InCloseNowrite, "IN_CLOSE_NOWRITE"},
	{InOpen, "IN_OPEN"},
	{InMovedFrom, "IN_MOVED_FROM"},
	{InMovedTo, "IN_MOVED_TO"},
	{InCreate, "IN_CREATE"},
	{InDelete, "IN_DELETE"},
	{InDeleteSelf, "IN_DELETE_SELF"},
	{InMoveSelf, "IN_MOVE_SELF"},
	{InUnmount, "IN_UNMOUNT"},
	{InQOverflow, "IN_Q_OVERFLOW"},
	{InIgnored, "IN_IGNORED"},
	{InOnlydir, "IN_ONLYDIR"},
	{InDontFollow, "IN_DONT_FOLLOW"},
	{InExclUnlink, "IN_EXCL_UNLINK"},
	{InMaskCreate, "IN_MASK_CREATE"},
	{InMaskAdd, "IN_MASK_ADD"},
	{InIsdir, "IN_ISDIR"},
	{InOneshot, "IN_ONESHOT"},
}

// String renders m as a |-joined list of bit names. Bits without a name
// are rendered once as a hexadecimal remainder, so reserved positions
// stay visible instead of vanishing.
func (m Mask) String() string {
	if m == 0 {
		return "0"
	}
	var names []string
	rest := m
	for _, mn := range masknames {
		if m&mn.bit != 0 {
			names = append(names, mn.name)
			rest &^= mn.bit
		}
	}
	if rest != 0 {
		names = append(names, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(names, "|")
}
