// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import "errors"

var (
	// ErrNoServiceSection indicates the config file has no top-level
	// "service" section naming any managed services.
	ErrNoServiceSection = errors.New("supervisor: config has no top-level \"service\" section")
	// ErrInvalidServiceSection indicates a service subsection's value
	// was not itself a section.
	ErrInvalidServiceSection = errors.New("supervisor: service entry is not a section")
	// ErrReloadNotImplemented is logged and swallowed on SIGHUP per
	// SPEC_FULL.md §14.3; it is exported so callers can recognize the
	// condition in tests.
	ErrReloadNotImplemented = errors.New("supervisor: config reload is not implemented")
)
