// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import (
	"encoding/binary"
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

// appendRecord encodes one wire record: the fixed header followed by the
// name and pad NUL bytes, with the declared length covering both.
func appendRecord(buf []byte, wd int32, mask Mask, cookie uint32, name string, pad int) []byte {
	var hdr [unix.SizeofInotifyEvent]byte
	binary.NativeEndian.PutUint32(hdr[0:], uint32(wd))
	binary.NativeEndian.PutUint32(hdr[4:], uint32(mask))
	binary.NativeEndian.PutUint32(hdr[8:], cookie)
	binary.NativeEndian.PutUint32(hdr[12:], uint32(len(name)+pad))
	buf = append(buf, hdr[:]...)
	buf = append(buf, name...)
	buf = append(buf, make([]byte, pad)...)
	return buf
}

func testTable() *Table {
	return &Table{entries: []watchEntry{
		{wd: 1, path: "/watched/dir"},
		{wd: 2, path: "/watched/file"},
		{wd: 5, path: "/watched/gone", ignored: true},
	}}
}

func TestDecodeRoundTrip(t *testing.T) {
	dec := NewDecoder(testTable())

	var buf []byte
	buf = appendRecord(buf, 1, InCreate.Union(InIsdir), 0, "subdir", 2)
	buf = appendRecord(buf, 2, InModify, 0, "", 0)
	buf = appendRecord(buf, 1, InMovedFrom, 42, "old.txt", 1)
	buf = appendRecord(buf, 1, InMovedTo, 42, "new.txt", 1)
	buf = appendRecord(buf, -1, InQOverflow, 0, "", 0)

	events, err := dec.Decode(buf)
	if err != nil {
		t.Fatalf("Decode()=%v", err)
	}
	want := []Event{
		{Wd: 1, Mask: InCreate.Union(InIsdir), Path: "/watched/dir", Name: "subdir"},
		{Wd: 2, Mask: InModify, Path: "/watched/file"},
		{Wd: 1, Mask: InMovedFrom, Cookie: 42, Path: "/watched/dir", Name: "old.txt"},
		{Wd: 1, Mask: InMovedTo, Cookie: 42, Path: "/watched/dir", Name: "new.txt"},
		{Wd: -1, Mask: InQOverflow},
	}
	if len(events) != len(want) {
		t.Fatalf("want %d events; got %d: %v", len(want), len(events), events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d=%+v; want %+v", i, events[i], want[i])
		}
	}
	if !events[4].Mask.Has(InQOverflow) {
		t.Fatalf("overflow bit lost: %v", events[4].Mask)
	}
}

func TestDecodeIgnoredEntryStillResolves(t *testing.T) {
	dec := NewDecoder(testTable())

	buf := appendRecord(nil, 5, InIgnored, 0, "", 0)
	events, err := dec.Decode(buf)
	if err != nil {
		t.Fatalf("Decode()=%v", err)
	}
	if len(events) != 1 || events[0].Path != "/watched/gone" || events[0].Mask != InIgnored {
		t.Fatalf("got %v; want one IN_IGNORED event for /watched/gone", events)
	}
}

func TestDecodeNulPadding(t *testing.T) {
	dec := NewDecoder(testTable())

	// Embedded NULs after the name are padding, not a second name.
	buf := appendRecord(nil, 1, InCreate, 0, "a\x00bc", 0)
	buf = appendRecord(buf, 2, InModify, 0, "", 0)

	events, err := dec.Decode(buf)
	if err != nil {
		t.Fatalf("Decode()=%v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events; got %d: %v", len(events), events)
	}
	if events[0].Name != "a" {
		t.Fatalf("Name=%q; want %q", events[0].Name, "a")
	}
	if events[1].Wd != 2 {
		t.Fatalf("desynchronized after padded name: %v", events[1])
	}
}

func TestDecodeEmptyBuffer(t *testing.T) {
	dec := NewDecoder(testTable())
	events, err := dec.Decode(nil)
	if err != nil || len(events) != 0 {
		t.Fatalf("Decode(nil)=(%v, %v); want (0 events, nil)", events, err)
	}
}

func TestDecodeUnknownWd(t *testing.T) {
	dec := NewDecoder(testTable())
	buf := appendRecord(nil, 7, InModify, 0, "", 0)
	if _, err := dec.Decode(buf); !errors.Is(err, ErrWatchNotFound) {
		t.Fatalf("Decode()=%v; want ErrWatchNotFound", err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	dec := NewDecoder(testTable())
	buf := appendRecord(nil, 1, InModify, 0, "", 0)
	if _, err := dec.Decode(buf[:unix.SizeofInotifyEvent-3]); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Decode()=%v; want ErrShortBuffer", err)
	}
	// Same for a header truncated after a complete preceding record.
	long := append(append([]byte(nil), buf...), buf[:5]...)
	if _, err := dec.Decode(long); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Decode()=%v; want ErrShortBuffer", err)
	}
}

func TestDecodeNamePastBuffer(t *testing.T) {
	dec := NewDecoder(testTable())
	// Declared name length larger than the bytes actually present.
	buf := appendRecord(nil, 1, InCreate, 0, "name", 0)
	binary.NativeEndian.PutUint32(buf[12:], 64)
	if _, err := dec.Decode(buf); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("Decode()=%v; want ErrShortBuffer", err)
	}
}
