// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

// Command toolversectl runs one-shot ToolVerse maintenance tasks: a manual
// sync, exports of the directory, translation lookups and config checks.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
