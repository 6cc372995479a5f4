// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import (
	"fmt"
	"sort"
)

// watchEntry pairs one kernel-assigned watch descriptor with the path it
// was registered for. An ignored entry had its removal requested; it is
// never matched when adding a new watch, but its descriptor stays
// resolvable for events already queued kernel-side.
type watchEntry struct {
	wd      int32
	path    string
	ignored bool
}

// Table is an ordered collection of watch entries keyed by descriptor.
// Descriptors are assigned by the kernel in strictly increasing order
// within one instance's lifetime, so entries are kept in a sorted slice:
// insertion lands at the end and lookup is a binary search. Entries are
// only dropped when the whole table is discarded; removal marks them
// ignored instead, keeping in-flight events attributable.
type Table struct {
	entries []watchEntry
}

// Len returns the number of entries, ignored ones included.
func (t *Table) Len() int { return len(t.entries) }

// search returns the index at which wd lives or would be inserted, and
// whether it is present.
func (t *Table) search(wd int32) (int, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].wd >= wd })
	return i, i < len(t.entries) && t.entries[i].wd == wd
}

// Add resolves path, registers it on ch and records the returned
// descriptor. When the kernel hands back a descriptor already present in
// the table, the same path was registered twice and the duplicate is
// absorbed: no new entry is created. A descriptor hit on an entry whose
// removal was already confirmed means the kernel recycled it for a new
// watch; the slot is rewritten as a genuinely fresh entry rather than a
// revival of the old one.
func (t *Table) Add(ch *Channel, path string, mask Mask) (int32, error) {
	abs, err := cleanpath(path)
	if err != nil {
		return -1, fmt.Errorf("inotify: resolve %q: %w", path, err)
	}
	wd, err := ch.AddWatch(abs, mask)
	if err != nil {
		return -1, err
	}
	if i, ok := t.search(wd); ok {
		e := &t.entries[i]
		if e.ignored {
			e.path = abs
			e.ignored = false
		}
		return wd, nil
	}
	// Monotonic descriptors mean new entries belong at the end; the
	// sorted insert below is only exercised if that assumption breaks.
	i, _ := t.search(wd)
	if i == len(t.entries) {
		t.entries = append(t.entries, watchEntry{wd: wd, path: abs})
	} else {
		t.entries = append(t.entries, watchEntry{})
		copy(t.entries[i+1:], t.entries[i:])
		t.entries[i] = watchEntry{wd: wd, path: abs}
	}
	return wd, nil
}

// RemoveByPath cancels the first live watch registered for path and
// marks its entry ignored. The entry stays resolvable until the table is
// discarded. Removing a path that has no live entry is a caller bug and
// panics: callers are expected to track what they registered.
func (t *Table) RemoveByPath(ch *Channel, path string) error {
	abs, err := cleanpath(path)
	if err != nil {
		return fmt.Errorf("inotify: resolve %q: %w", path, err)
	}
	for i := range t.entries {
		e := &t.entries[i]
		if !e.ignored && e.path == abs {
			if err := ch.RemoveWatch(e.wd); err != nil {
				return err
			}
			e.ignored = true
			return nil
		}
	}
	panic(fmt.Sprintf("inotify: remove of unwatched path %q", abs))
}

// RemoveByWd cancels the watch for wd and marks its entry ignored.
// Removing an unknown descriptor, or one already removed, is a caller
// bug and panics.
func (t *Table) RemoveByWd(ch *Channel, wd int32) error {
	i, ok := t.search(wd)
	if !ok {
		panic(fmt.Sprintf("inotify: remove of unknown wd %d", wd))
	}
	e := &t.entries[i]
	if e.ignored {
		panic(fmt.Sprintf("inotify: double remove of wd %d (%q)", wd, e.path))
	}
	if err := ch.RemoveWatch(wd); err != nil {
		return err
	}
	e.ignored = true
	return nil
}

// Resolve returns the path registered for wd. Ignored entries resolve
// like live ones, so events still queued for a removed watch keep their
// attribution. A miss reports ok=false and signals that the descriptor
// was never seen by this table.
func (t *Table) Resolve(wd int32) (string, bool) {
	if i, ok := t.search(wd); ok {
		return t.entries[i].path, true
	}
	return "", false
}
