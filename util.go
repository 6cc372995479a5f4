// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import "path/filepath"

// cleanpath resolves path to an absolute, clean form. The kernel
// registration call requires absolute paths; relative ones are resolved
// against the working directory, never passed through as-is.
func cleanpath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Abs(path)
}

// nonil returns the first non-nil error of its arguments.
func nonil(err ...error) error {
	for _, err := range err {
		if err != nil {
			return err
		}
	}
	return nil
}
