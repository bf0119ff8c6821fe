// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package typeexpr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokenEnd tokenKind = iota
	tokenIdentifier
	tokenNumber
	tokenPunctuation
	tokenTag
)

type token struct {
	kind tokenKind
	text string

	// offset is the byte offset in the expression.
	offset int
}

func (t token) is(punctuation string) bool {
	return t.kind == tokenPunctuation && t.text == punctuation
}

func (t token) String() string {
	switch t.kind {
	case tokenEnd:
		return "end of input"
	case tokenTag:
		return "tag `" + t.text + "`"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

const punctuation = "*[](){},;"

func tokenize(source string) ([]token, error) {
	var tokens []token
	for offset := 0; offset < len(source); {
		r, size := utf8.DecodeRuneInString(source[offset:])
		switch {
		case unicode.IsSpace(r):
			offset += size

		case strings.ContainsRune(punctuation, r):
			tokens = append(tokens, token{kind: tokenPunctuation, text: string(r), offset: offset})
			offset += size

		case r == '`':
			end := strings.IndexByte(source[offset+1:], '`')
			if end < 0 {
				return nil, fmt.Errorf("%w at offset %d: unterminated tag", ErrSyntax, offset)
			}
			tokens = append(tokens, token{kind: tokenTag, text: source[offset+1 : offset+1+end], offset: offset})
			offset += end + 2

		case unicode.IsDigit(r):
			start := offset
			for offset < len(source) && source[offset] >= '0' && source[offset] <= '9' {
				offset++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: source[start:offset], offset: start})

		case r == '_' || unicode.IsLetter(r):
			start := offset
			for offset < len(source) {
				r, size := utf8.DecodeRuneInString(source[offset:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				offset += size
			}
			tokens = append(tokens, token{kind: tokenIdentifier, text: source[start:offset], offset: start})

		default:
			return nil, fmt.Errorf("%w at offset %d: unexpected character %q", ErrSyntax, offset, r)
		}
	}
	return append(tokens, token{kind: tokenEnd, offset: len(source)}), nil
}

type tokenStream struct {
	source   string
	tokens   []token
	position int
}

func (s *tokenStream) peek() token {
	return s.tokens[s.position]
}

// next consumes a token. The end token is never consumed.
func (s *tokenStream) next() token {
	current := s.tokens[s.position]
	if current.kind != tokenEnd {
		s.position++
	}
	return current
}

func (s *tokenStream) expect(punctuation string) error {
	current := s.next()
	if !current.is(punctuation) {
		return s.errorf(current, "expected %q, got %s", punctuation, current)
	}
	return nil
}

func (s *tokenStream) errorf(at token, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d in %q: %s", ErrSyntax, at.offset, s.source, fmt.Sprintf(format, args...))
}
