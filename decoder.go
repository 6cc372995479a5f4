// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	// ErrWatchNotFound is returned by Decode when an event carries a
	// descriptor the table has never seen. It signals the decoder and
	// table have desynchronized; the caller may drop the batch or abort,
	// but the event is never attributed to a guessed path.
	ErrWatchNotFound = errors.New("watch descriptor not present in table")

	// ErrShortBuffer is returned when a header or declared name would
	// extend past the buffer's valid length.
	ErrShortBuffer = errors.New("event record extends past buffer")
)

// Event is one decoded inotify record. It owns its own copies of Path
// and Name: mutating or discarding the table afterwards does not
// invalidate an event already handed to the caller.
type Event struct {
	Wd     int32  // Kernel-assigned watch descriptor the event belongs to
	Mask   Mask   // What happened
	Cookie uint32 // Correlates the two halves of a rename, zero otherwise
	Path   string // Watched path the descriptor resolves to
	Name   string // Entry inside a watched directory, empty for the path itself
}

func (e Event) String() string {
	s := e.Mask.String() + " @" + e.Path
	if e.Name != "" {
		s += " " + strconv.Quote(e.Name)
	}
	return s
}

// Decoder slices raw read buffers into events, resolving descriptors
// against one Table.
type Decoder struct {
	table *Table
}

// NewDecoder returns a Decoder resolving against t.
func NewDecoder(t *Table) Decoder { return Decoder{table: t} }

// Decode parses one read's worth of bytes into structured events. Each
// record is a fixed header followed by a declared number of name bytes;
// the name is NUL-padded to an alignment the kernel chooses, so the
// offset always advances by the declared length, never by the string
// length. Queue-overflow records carry no watch descriptor and decode
// without table resolution; they are surfaced to the caller, since they
// mean the kernel dropped events.
func (d Decoder) Decode(buf []byte) ([]Event, error) {
	var events []Event
	for offset := 0; offset < len(buf); {
		if len(buf)-offset < unix.SizeofInotifyEvent {
			return nil, fmt.Errorf("inotify: %w: header at offset %d", ErrShortBuffer, offset)
		}
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		namelen := int(raw.Len)
		if len(buf)-offset-unix.SizeofInotifyEvent < namelen {
			return nil, fmt.Errorf("inotify: %w: %d name bytes at offset %d", ErrShortBuffer, namelen, offset)
		}
		ev := Event{Wd: raw.Wd, Mask: Mask(raw.Mask), Cookie: raw.Cookie}
		if namelen > 0 {
			name := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+namelen]
			if i := bytes.IndexByte(name, 0); i != -1 {
				name = name[:i]
			}
			ev.Name = string(name)
		}
		offset += unix.SizeofInotifyEvent + namelen
		if !ev.Mask.Has(InQOverflow) {
			path, ok := d.table.Resolve(ev.Wd)
			if !ok {
				return nil, fmt.Errorf("inotify: %w: wd %d", ErrWatchNotFound, ev.Wd)
			}
			ev.Path = path
		}
		dbgprintf("Decode: %v", ev)
		events = append(events, ev)
	}
	return events, nil
}
