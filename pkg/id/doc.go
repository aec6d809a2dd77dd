// SPDX-License-Identifier: BSD-3-Clause

// Package id wraps Google's UUID library with two functions: one-off
// random identifiers, and identifiers that persist across restarts by
// being stored in a file.
//
// bakufud uses GetOrCreatePersistentID to tag every log line with a
// stable supervisor instance identifier, so log aggregation can tell
// two restarts of the same supervisor on the same host apart from two
// genuinely different supervisors:
//
//	instanceID, err := id.GetOrCreatePersistentID("id", "/var/run/bakufud")
//	if err != nil {
//		// fall back to an ephemeral ID rather than fail the run
//		instanceID = id.NewID()
//	}
//	logger = logger.With("instance_id", instanceID)
//
// The first call creates /var/run/bakufud/id with a freshly generated
// UUID; subsequent calls, including from concurrent goroutines or a
// second process racing to create the same file, read back whichever
// UUID won the race.
//
// GetOrCreatePersistentID can fail for filesystem reasons; callers that
// want to distinguish them can match against the package's sentinel
// errors with errors.Is (ErrDirectoryCreation, ErrFileCreation,
// ErrFileRead, ErrInvalidUUID, ErrFileStat).
package id
