// File created by olandr (c) 2026.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

//go:build linux
// +build linux

package inotify

import (
	"fmt"
	"os"
	"strconv"
)

// debugTag gates diagnostic printing; set INOTIFY_DEBUG=1 to enable.
var debugTag, _ = strconv.ParseBool(os.Getenv("INOTIFY_DEBUG"))

func dbgprint(v ...interface{}) {
	if debugTag {
		fmt.Print("[D] ")
		fmt.Print(v...)
		fmt.Println()
	}
}

func dbgprintf(format string, v ...interface{}) {
	if debugTag {
		fmt.Print("[D] ")
		fmt.Printf(format, v...)
		fmt.Println()
	}
}
