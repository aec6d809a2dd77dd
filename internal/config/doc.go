// SPDX-License-Identifier: BSD-3-Clause

// Package config is component A of the supervisor: the lexer and
// parser for its configuration language.
//
// The grammar is a small block-structured key/value dialect, not a
// standard format:
//
//	document := entry*
//	entry     := key EQUAL value SEMICOLON
//	           | key+ LEFT_BRACE document RIGHT_BRACE
//	key       := BAREKEY | STRING
//	value     := BAREKEY | STRING | NUMBER
//
// A multi-key section header such as "a b c { ... }" descends into
// nested objects a.b.c, creating intermediates automatically. Two
// section headers naming the same path merge their bodies key by key;
// colliding leaves and colliding top-level keys both log a warning
// through the default slog logger and keep the later value.
//
// Example:
//
//	data, err := config.Load("bakufud.conf")
//	if err != nil {
//		return err
//	}
//	services, _ := data["service"].(config.Section)
package config
