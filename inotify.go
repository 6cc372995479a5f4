// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

// BUG(olandr): removing a watch and removing its kernel-side state are
// decoupled. Unwatch only issues the request; the IN_IGNORED event that
// confirms it still arrives through ReadEvents and callers observing the
// stream should expect it.

// Package inotify manages watch registrations against the Linux inotify
// facility and decodes its raw event stream into structured records.
//
// The package is deliberately one level below convenience wrappers like
// fsnotify: it exposes the instance (Channel), the descriptor-to-path
// bookkeeping (Table) and the wire decoding (Decoder) as separate pieces,
// plus a Watcher tying the three together for the common single-reader
// flow. There is no recursive watching, no event coalescing and no
// background goroutine; Read is the single suspension point.
package inotify

// Watcher couples one Channel with the Table tracking its registrations
// and a Decoder over that table. It packages the canonical control flow:
// open, add paths, read, decode, remove, close.
type Watcher struct {
	ch    *Channel
	table Table
	dec   Decoder
	buf   [64 << 10]byte
}

// NewWatcher opens an inotify instance with the given creation flags and
// wraps it with an empty table.
func NewWatcher(flags CreateFlags) (*Watcher, error) {
	ch, err := Open(flags)
	if err != nil {
		return nil, err
	}
	w := &Watcher{ch: ch}
	w.dec = NewDecoder(&w.table)
	return w, nil
}

// Watch registers interest in path for the events in mask and records
// the resulting descriptor. Watching the same path twice is absorbed
// silently.
func (w *Watcher) Watch(path string, mask Mask) (int32, error) {
	return w.table.Add(w.ch, path, mask)
}

// Unwatch cancels the live watch registered for path. The kernel still
// delivers a final IN_IGNORED event for its descriptor afterwards.
// Unwatching a path that was never watched panics.
func (w *Watcher) Unwatch(path string) error {
	return w.table.RemoveByPath(w.ch, path)
}

// UnwatchWd cancels the live watch for wd. Unknown and already-removed
// descriptors panic.
func (w *Watcher) UnwatchWd(wd int32) error {
	return w.table.RemoveByWd(w.ch, wd)
}

// ReadEvents performs one read against the channel and decodes whatever
// it returned. On a non-blocking watcher an empty queue yields
// ErrWouldBlock.
func (w *Watcher) ReadEvents() ([]Event, error) {
	n, err := w.ch.Read(w.buf[:])
	if err != nil {
		return nil, err
	}
	return w.dec.Decode(w.buf[:n])
}

// Table exposes the descriptor table, for callers that resolve or
// remove by descriptor themselves.
func (w *Watcher) Table() *Table { return &w.table }

// Channel exposes the underlying channel, for callers that manage their
// own read buffers.
func (w *Watcher) Channel() *Channel { return w.ch }

// Close releases the inotify instance. Close panics when called twice.
func (w *Watcher) Close() error {
	return w.ch.Close()
}
