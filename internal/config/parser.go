// SPDX-License-Identifier: BSD-3-Clause

// Package config implements the supervisor's configuration language: a
// small block-structured key/value dialect, hand-rolled from the
// grammar in original_source/bakufu/config.py rather than built on
// JSON/YAML/TOML/INI. See SPEC_FULL.md §4.1 for the grammar and
// concrete scenarios this package is tested against.
package config

import (
	"log/slog"
	"os"
)

// Section is a parsed configuration tree node. Leaves are bool, int64,
// float64, or string; nested keys hold a Section.
type Section map[string]any

// Load reads and parses the config file at path.
func Load(path string) (Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse parses a complete config document.
func Parse(s string) (Section, error) {
	p := &parser{scanner: newScanner(s), logger: slog.Default()}
	return p.parse(0)
}

// parser turns a token stream into a Section tree, logging a warning
// for every duplicate leaf or section-merge collision instead of
// failing, per SPEC_FULL.md §4.1's section-merging rule.
type parser struct {
	scanner *scanner
	logger  *slog.Logger
}

func (p *parser) parse(depth int) (Section, error) {
	data := Section{}
	for {
		tok, _, err := p.scanner.peek()
		if err != nil {
			return nil, err
		}
		if tok == TokenEOF {
			if depth > 0 {
				return nil, parseErrorf(p.scanner.pos, "unclosed block")
			}
			return data, nil
		}
		if tok == TokenRightBrace {
			if depth < 1 {
				return nil, parseErrorf(p.scanner.pos, "unexpected token %s", tok)
			}
			if _, _, err := p.scanner.next(); err != nil {
				return nil, err
			}
			return data, nil
		}

		key, err := p.expect(TokenBareKey, TokenString)
		if err != nil {
			return nil, err
		}
		keyStr := key.(string)

		tok, _, err = p.scanner.peek()
		if err != nil {
			return nil, err
		}
		if tok == TokenEqual {
			if _, _, err := p.scanner.next(); err != nil {
				return nil, err
			}
			vtok, value, err := p.scanner.next()
			if err != nil {
				return nil, err
			}
			switch vtok {
			case TokenBareKey:
				lexeme := value.(string)
				if b, ok := reserved[lexeme]; ok {
					p.update(data, keyStr, b)
				} else {
					p.update(data, keyStr, lexeme)
				}
			case TokenNumber, TokenString:
				p.update(data, keyStr, value)
			default:
				return nil, parseErrorf(p.scanner.pos, "unexpected token %s", vtok)
			}
			if _, err := p.expect(TokenSemicolon); err != nil {
				return nil, err
			}
			continue
		}

		keys := []string{keyStr}
		for {
			stok, svalue, err := p.scanner.next()
			if err != nil {
				return nil, err
			}
			switch stok {
			case TokenBareKey, TokenString:
				keys = append(keys, svalue.(string))
				continue
			case TokenLeftBrace:
				body, err := p.parse(depth + 1)
				if err != nil {
					return nil, err
				}
				p.updateSection(data, keys, body)
			default:
				return nil, parseErrorf(p.scanner.pos, "unexpected token %s", stok)
			}
			break
		}
	}
}

func (p *parser) expect(want ...Token) (any, error) {
	tok, value, err := p.scanner.next()
	if err != nil {
		return nil, err
	}
	for _, w := range want {
		if tok == w {
			return value, nil
		}
	}
	return nil, parseErrorf(p.scanner.pos, "unexpected token %s", tok)
}

// update assigns key=value into data, warning (not failing) on
// collision; the later value wins.
func (p *parser) update(data Section, key string, value any) {
	if _, exists := data[key]; exists {
		p.logger.Warn("duplicate config entry", "key", key)
	}
	data[key] = value
}

// updateSection descends keys[:-1] into nested Sections, creating them
// as needed, then merges value into the terminal key — key-by-key if a
// Section of that name already exists there, per the grammar's
// section-merge rule.
func (p *parser) updateSection(data Section, keys []string, value Section) {
	sub := data
	for _, k := range keys[:len(keys)-1] {
		existing, ok := sub[k]
		if !ok {
			next := Section{}
			sub[k] = next
			sub = next
			continue
		}
		next, ok := existing.(Section)
		if !ok {
			// A scalar occupies this path; overwrite it with a section,
			// matching setdefault's behavior of trusting the caller.
			next = Section{}
			sub[k] = next
		}
		sub = next
	}

	last := keys[len(keys)-1]
	existing, ok := sub[last]
	if !ok {
		sub[last] = value
		return
	}
	existingSection, ok := existing.(Section)
	if !ok {
		sub[last] = value
		return
	}
	for k, v := range value {
		p.update(existingSection, k, v)
	}
}
