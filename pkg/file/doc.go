// SPDX-License-Identifier: BSD-3-Clause

// Package file provides atomic file operations for safe and reliable file
// system interactions: writing to a temporary file and renaming it into
// place so readers never observe a partially written file.
//
// AtomicCreateFile creates a new file atomically, failing instead of
// overwriting if the file already exists. pkg/id uses it to write a
// persistent instance ID exactly once, letting concurrent callers race
// to create it and all read back whichever write won.
package file
